package handler

import (
	"time"

	inventoryapp "github.com/bazaartech/backend/internal/application/inventory"
	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MovementHandler handles stock movement requests
type MovementHandler struct {
	BaseHandler
	service *inventoryapp.MovementService
}

// NewMovementHandler creates a MovementHandler
func NewMovementHandler(service *inventoryapp.MovementService) *MovementHandler {
	return &MovementHandler{service: service}
}

// CreateMovementRequest is the payload for POST /inventory/movements
type CreateMovementRequest struct {
	StoreID    string `json:"store_id" binding:"required,uuid"`
	ProductID  string `json:"product_id" binding:"required,uuid"`
	SupplierID string `json:"supplier_id" binding:"omitempty,uuid"`
	Kind       string `json:"kind" binding:"required,movementkind"`
	Quantity   int64  `json:"quantity" binding:"gte=0"`
}

// ListMovementsRequest holds query parameters for GET /inventory/movements
type ListMovementsRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	StoreID    string `form:"store_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Kind       string `form:"kind" binding:"omitempty,movementkind"`
	Processed  *bool  `form:"processed"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Create records a movement and schedules its reconciliation. The
// movement row is durable once this returns; the balance catches up
// asynchronously.
func (h *MovementHandler) Create(c *gin.Context) {
	var req CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	input := inventoryapp.CreateMovementInput{
		StoreID:   uuid.MustParse(req.StoreID),
		ProductID: uuid.MustParse(req.ProductID),
		Kind:      inventory.MovementKind(req.Kind),
		Quantity:  req.Quantity,
	}
	if req.SupplierID != "" {
		supplierID := uuid.MustParse(req.SupplierID)
		input.SupplierID = &supplierID
	}
	if claims := middleware.GetClaims(c); claims != nil {
		if userID, err := claims.GetUserUUID(); err == nil {
			input.UserID = &userID
		}
	}

	movement, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, movement)
}

// GetByID retrieves one movement
func (h *MovementHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	movement, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movement)
}

// List retrieves movements matching the query filters
func (h *MovementHandler) List(c *gin.Context) {
	var req ListMovementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "Invalid query parameters")
		return
	}

	filter := inventoryapp.MovementListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Kind:     req.Kind,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}
	if req.StoreID != "" {
		id := uuid.MustParse(req.StoreID)
		filter.StoreID = &id
	}
	if req.ProductID != "" {
		id := uuid.MustParse(req.ProductID)
		filter.ProductID = &id
	}
	if req.SupplierID != "" {
		id := uuid.MustParse(req.SupplierID)
		filter.SupplierID = &id
	}
	filter.Processed = req.Processed
	if req.DateFrom != "" {
		t, err := time.Parse(time.RFC3339, req.DateFrom)
		if err != nil {
			h.BadRequest(c, "date_from must be RFC 3339")
			return
		}
		filter.DateFrom = &t
	}
	if req.DateTo != "" {
		t, err := time.Parse(time.RFC3339, req.DateTo)
		if err != nil {
			h.BadRequest(c, "date_to must be RFC 3339")
			return
		}
		filter.DateTo = &t
	}

	movements, total, err := h.service.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, movements, total, page, pageSize)
}
