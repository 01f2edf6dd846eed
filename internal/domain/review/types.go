package review

import "closet-rental/internal/pkg/errs"

var (
	ErrInvalidRating     = errs.New("rating must be between 1 and 5")
	ErrCommentTooShort   = errs.New("comment must be at least 30 characters")
	ErrCommentTooLong    = errs.New("comment exceeds maximum length")
	ErrUnknownTag        = errs.New("tag is not offered for this review")
	ErrTooManyTags       = errs.New("too many tags")
	ErrRentalNotEligible = errs.New("rental is not eligible for review")
	ErrNotAParty         = errs.New("only the renter or the lender can review a rental")
	ErrAlreadyReviewed   = errs.New("review already exists for this rental")
)

// AuthorRole is the side of the rental the author was on.
type AuthorRole string

const (
	AuthorRenter AuthorRole = "renter"
	AuthorLender AuthorRole = "lender"
)

func (r AuthorRole) String() string {
	return string(r)
}
