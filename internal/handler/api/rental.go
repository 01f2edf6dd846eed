package api

import (
	"net/http"

	reqdto "closet-rental/internal/handler/dto/request"
	resdto "closet-rental/internal/handler/dto/response"
	"closet-rental/internal/handler/httperr"
	"closet-rental/internal/handler/middleware"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	cmds commands.RentalCommands
	q    queries.RentalQueries
}

func NewRentalHandler(cmds commands.RentalCommands, q queries.RentalQueries) *RentalHandler {
	return &RentalHandler{cmds: cmds, q: q}
}

// @Summary Request a rental
// @Description Create a pending rental request for a date range
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRentalRequest true "Rental request"
// @Success 201 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /rentals [post]
func (h *RentalHandler) Create(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput(renterID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.cmds.CreateRequest(c.Request.Context(), in)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to create rental request")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRentalView(view))
}

// @Summary Get rental
// @Description Get a rental the caller is a party to
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}

	view, found, err := h.q.Get(c.Request.Context(), viewerID, id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to get rental")
		return
	}
	if !found {
		httperr.AbortWithError(c, http.StatusNotFound, errs.ErrRentalNotFound, "Rental not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// @Summary List rentals
// @Description List the caller's rentals, newest first
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param role query string false "renter or lender"
// @Param status query string false "Rental status"
// @Param item_id query string false "Item ID"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.RentalListResponse
// @Failure 400 {object} httperr.Response
// @Router /rentals [get]
func (h *RentalHandler) List(c *gin.Context) {
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var query reqdto.ListRentalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	filter, cursor := query.ToFilter()

	views, next, err := h.q.List(c.Request.Context(), viewerID, filter, cursor, query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list rentals")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalViews(views, next))
}

// @Summary Apply a lifecycle event
// @Description accept, decline, cancel, activate or complete a rental
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.TransitionRequest true "Event"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/transitions [post]
func (h *RentalHandler) Transition(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}

	var req reqdto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	event, err := req.ToEvent()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown event", gin.H{"event": req.Event})
		return
	}

	result, err := h.cmds.Transition(c.Request.Context(), id, event, actorID)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to apply transition")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
}
