package handler

import (
	"time"

	inventoryapp "github.com/bazaartech/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock balance queries
type StockHandler struct {
	BaseHandler
	service *inventoryapp.StockService
}

// NewStockHandler creates a StockHandler
func NewStockHandler(service *inventoryapp.StockService) *StockHandler {
	return &StockHandler{service: service}
}

// ListStockRequest holds query parameters for GET /inventory/stock
type ListStockRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	StoreID    string `form:"store_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=out_of_stock low_stock in_stock"`
	Search     string `form:"search"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LookupRequest holds query parameters for GET /inventory/stock/lookup
type LookupRequest struct {
	StoreID   string `form:"store_id" binding:"required,uuid"`
	ProductID string `form:"product_id" binding:"required,uuid"`
}

// List retrieves stock balances matching the query filters
func (h *StockHandler) List(c *gin.Context) {
	var req ListStockRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "Invalid query parameters")
		return
	}

	filter := inventoryapp.StockListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Status:   req.Status,
		Search:   req.Search,
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

	balances, total, err := h.service.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, balances, total, page, pageSize)
}

// Lookup retrieves the balance for one store/product pair
func (h *StockHandler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "store_id and product_id are required")
		return
	}

	balance, err := h.service.GetByStoreAndProduct(
		c.Request.Context(),
		uuid.MustParse(req.StoreID),
		uuid.MustParse(req.ProductID),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}
