package api

import (
	"net/http"

	"closet-rental/internal/domain/review"
	reqdto "closet-rental/internal/handler/dto/request"
	resdto "closet-rental/internal/handler/dto/response"
	"closet-rental/internal/handler/httperr"
	"closet-rental/internal/handler/middleware"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary Review a completed rental
// @Description Each party may review a completed rental once
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.CreateReviewRequest true "Review"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}
	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.Submit(c.Request.Context(), req.ToInput(rentalID, authorID))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to submit review")
		return
	}
	res, err := resdto.FromReviewView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render review", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Reviews of a rental
// @Tags reviews
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.ReviewListResponse
// @Router /rentals/{id}/reviews [get]
func (h *ReviewHandler) ListByRental(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}
	views, err := h.q.ListByRental(c.Request.Context(), rentalID)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list reviews")
		return
	}
	h.respondList(c, views, nil)
}

// @Summary Reviews about a user
// @Description Reviews the user received, with a rating summary
// @Tags reviews
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} resdto.ReviewListResponse
// @Router /users/{id}/reviews [get]
func (h *ReviewHandler) ListBySubject(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user ID", nil)
		return
	}
	views, summary, err := h.q.ListBySubject(c.Request.Context(), subjectID)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list reviews")
		return
	}
	h.respondList(c, views, summary)
}

// @Summary Quick tags
// @Tags reviews
// @Produce json
// @Success 200 {object} resdto.QuickTagsResponse
// @Router /reviews/tags [get]
func (h *ReviewHandler) QuickTags(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.QuickTagsResponse{
		Renter: review.QuickTags(review.AuthorRenter),
		Lender: review.QuickTags(review.AuthorLender),
	})
}

func (h *ReviewHandler) respondList(c *gin.Context, views []*queries.ReviewView, summary *queries.RatingSummary) {
	res, err := resdto.FromReviewViews(views, summary)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render reviews", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
