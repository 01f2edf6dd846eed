package api

import (
	"net/http"

	reqdto "closet-rental/internal/handler/dto/request"
	resdto "closet-rental/internal/handler/dto/response"
	"closet-rental/internal/handler/httperr"
	"closet-rental/internal/handler/middleware"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	cmds    commands.CatalogCommands
	items   queries.ItemQueries
	rentals queries.RentalQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, items queries.ItemQueries, rentals queries.RentalQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, items: items, rentals: rentals}
}

// @Summary List a garment
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Router /items [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateItem(c.Request.Context(), req.ToInput(ownerID))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to create item")
		return
	}
	h.respondItem(c, http.StatusCreated, view)
}

// @Summary Get item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID", nil)
		return
	}
	view, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to get item")
		return
	}
	h.respondItem(c, http.StatusOK, view)
}

// @Summary Browse items
// @Tags items
// @Produce json
// @Param owner_id query string false "Only this owner's listings, unlisted ones included"
// @Param category query string false "Category"
// @Param availability query string false "available, rented or unavailable"
// @Success 200 {object} resdto.ItemListResponse
// @Failure 400 {object} httperr.Response
// @Router /items [get]
func (h *CatalogHandler) List(c *gin.Context) {
	filter := queries.ItemListFilter{Category: c.Query("category")}
	if raw := c.Query("owner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid owner ID", nil)
			return
		}
		filter.OwnerID = &id
	}
	if raw := c.Query("availability"); raw != "" {
		availability, err := queries.ParseAvailability(raw)
		if err != nil {
			abortWithUseCaseError(c, err, "Invalid availability")
			return
		}
		filter.Availability = availability
	}

	views, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list items")
		return
	}
	res, err := resdto.FromItemViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render items", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Change daily price
// @Description Affects future requests only; existing rentals keep their snapshot
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.ChangePriceRequest true "Price"
// @Success 200 {object} resdto.ItemResponse
// @Failure 403 {object} httperr.Response
// @Router /items/{id}/price [patch]
func (h *CatalogHandler) ChangePrice(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID", nil)
		return
	}
	var req reqdto.ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.ChangePrice(c.Request.Context(), id, actorID, req.PricePerDay)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to change price")
		return
	}
	h.respondItem(c, http.StatusOK, view)
}

// @Summary Edit a listing
// @Description Partial update of title, image, details and the listed flag
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Changes"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /items/{id} [patch]
func (h *CatalogHandler) Update(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID", nil)
		return
	}
	var req reqdto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if req.IsEmpty() {
		httperr.AbortWithError(c, http.StatusBadRequest, errEmptyUpdate, "Nothing to update", nil)
		return
	}

	view, err := h.cmds.UpdateItem(c.Request.Context(), id, actorID, req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to update item")
		return
	}
	h.respondItem(c, http.StatusOK, view)
}

// @Summary Remove a listing
// @Description Refused while the item has pending, accepted or active rentals
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /items/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID", nil)
		return
	}

	if err := h.cmds.DeleteItem(c.Request.Context(), id, actorID); err != nil {
		abortWithUseCaseError(c, err, "Failed to remove item")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Locked date ranges
// @Description Ranges held by accepted or active rentals
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.LocksResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/locks [get]
func (h *CatalogHandler) Locks(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID", nil)
		return
	}
	locks, err := h.rentals.LocksFor(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load locks")
		return
	}
	c.JSON(http.StatusOK, resdto.FromLocks(id.String(), locks))
}

func (h *CatalogHandler) respondItem(c *gin.Context, status int, view *queries.ItemView) {
	res, err := resdto.FromItemView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render item", nil)
		return
	}
	c.JSON(status, res)
}
