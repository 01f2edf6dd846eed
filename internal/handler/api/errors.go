package api

import (
	"net/http"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/domain/review"
	"closet-rental/internal/handler/httperr"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorRule struct {
	target error
	status int
}

// Order matters: typed errors unwrap to their sentinels, and some are also marked.
var errorRules = []errorRule{
	{rental.ErrConflict, http.StatusConflict},
	{rental.ErrInvalidTransition, http.StatusConflict},
	{errs.ErrStaleRental, http.StatusConflict},
	{review.ErrAlreadyReviewed, http.StatusConflict},
	{review.ErrRentalNotEligible, http.StatusConflict},
	{catalog.ErrItemUnavailable, http.StatusConflict},
	{commands.ErrItemHasOpenRentals, http.StatusConflict},

	{rental.ErrSelfRental, http.StatusUnprocessableEntity},

	{rental.ErrUnauthorizedActor, http.StatusForbidden},
	{queries.ErrRentalAccess, http.StatusForbidden},
	{commands.ErrNotItemOwner, http.StatusForbidden},
	{review.ErrNotAParty, http.StatusForbidden},

	{errs.ErrRentalNotFound, http.StatusNotFound},
	{errs.ErrItemNotFound, http.StatusNotFound},

	{rental.ErrPastDate, http.StatusBadRequest},
	{rental.ErrInvalidRange, http.StatusBadRequest},
	{rental.ErrNotesTooLong, http.StatusBadRequest},
	{rental.ErrMissingRenter, http.StatusBadRequest},
	{rental.ErrUnknownEvent, http.StatusBadRequest},
	{rental.ErrUnknownStatus, http.StatusBadRequest},
	{queries.ErrInvalidCursor, http.StatusBadRequest},
	{queries.ErrInvalidRole, http.StatusBadRequest},
	{queries.ErrInvalidAvailability, http.StatusBadRequest},
	{review.ErrInvalidRating, http.StatusBadRequest},
	{review.ErrCommentTooShort, http.StatusBadRequest},
	{review.ErrCommentTooLong, http.StatusBadRequest},
	{review.ErrUnknownTag, http.StatusBadRequest},
	{review.ErrTooManyTags, http.StatusBadRequest},
	{errs.ErrDomainValidation, http.StatusBadRequest},
}

func statusFor(err error) int {
	for _, r := range errorRules {
		if errs.Is(err, r.target) {
			return r.status
		}
	}
	return http.StatusInternalServerError
}

// abortWithUseCaseError picks the status from err. Internal failures never leak their message.
func abortWithUseCaseError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}

	var detail any
	if conflict, ok := rental.AsConflict(err); ok {
		detail = gin.H{
			"conflicting_start": conflict.Range.Start().Format(rental.DateLayout),
			"conflicting_end":   conflict.Range.End().Format(rental.DateLayout),
		}
	}
	httperr.AbortWithError(c, status, err, err.Error(), detail)
}

var (
	errUnauthenticated = errs.New("no authenticated user in context")
	errEmptyUpdate     = errs.New("update request has no fields")
)
