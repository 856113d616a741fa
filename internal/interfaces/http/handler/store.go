package handler

import (
	partnerapp "github.com/bazaartech/backend/internal/application/partner"
	"github.com/bazaartech/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// StoreHandler handles store management requests
type StoreHandler struct {
	BaseHandler
	service *partnerapp.StoreService
}

// NewStoreHandler creates a StoreHandler
func NewStoreHandler(service *partnerapp.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// StoreRequest is the payload for store create/update
type StoreRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Location string `json:"location"`
}

// Create adds a store
func (h *StoreHandler) Create(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	store, err := h.service.Create(c.Request.Context(), req.Name, req.Location)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, store)
}

// Update changes a store
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	store, err := h.service.Update(c.Request.Context(), id, req.Name, req.Location)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, store)
}

// GetByID retrieves one store
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, store)
}

// List retrieves stores
func (h *StoreHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "Invalid query parameters")
		return
	}

	stores, total, err := h.service.List(c.Request.Context(), req.Page, req.PageSize, req.Search)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := req.Page, req.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, stores, total, page, pageSize)
}

// Delete removes a store
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
