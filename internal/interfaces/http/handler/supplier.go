package handler

import (
	partnerapp "github.com/bazaartech/backend/internal/application/partner"
	"github.com/bazaartech/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles supplier management requests
type SupplierHandler struct {
	BaseHandler
	service *partnerapp.SupplierService
}

// NewSupplierHandler creates a SupplierHandler
func NewSupplierHandler(service *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// SupplierRequest is the payload for supplier create/update
type SupplierRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	ContactInfo string `json:"contact_info"`
}

// Create adds a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	supplier, err := h.service.Create(c.Request.Context(), req.Name, req.ContactInfo)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, supplier)
}

// Update changes a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), id, req.Name, req.ContactInfo)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// GetByID retrieves one supplier
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// List retrieves suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "Invalid query parameters")
		return
	}

	suppliers, total, err := h.service.List(c.Request.Context(), req.Page, req.PageSize, req.Search)
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
	h.SuccessWithMeta(c, suppliers, total, page, pageSize)
}

// Delete removes a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
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
