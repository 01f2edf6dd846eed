package api

import (
	"net/http"

	resdto "closet-rental/internal/handler/dto/response"
	"closet-rental/internal/handler/httperr"
	"closet-rental/internal/handler/middleware"
	"closet-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	q queries.NotificationQueries
}

func NewNotificationHandler(q queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{q: q}
}

// @Summary Rental notifications
// @Description Notices about the caller's rentals, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.NotificationListResponse
// @Failure 401 {object} httperr.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	views, err := h.q.ForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load notifications")
		return
	}
	res, err := resdto.FromNoticeViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render notifications", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
