package handler

import (
	"time"

	auditapp "github.com/bazaartech/backend/internal/application/audit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler serves the audit log
type AuditHandler struct {
	BaseHandler
	service *auditapp.Service
}

// NewAuditHandler creates an AuditHandler
func NewAuditHandler(service *auditapp.Service) *AuditHandler {
	return &AuditHandler{service: service}
}

// ListAuditRequest holds query parameters for GET /logs
type ListAuditRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Action    string `form:"action"`
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	StoreID   string `form:"store_id" binding:"omitempty,uuid"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// List retrieves audit entries, newest first
func (h *AuditHandler) List(c *gin.Context) {
	var req ListAuditRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "Invalid query parameters")
		return
	}

	filter := auditapp.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Action:   req.Action,
	}
	if req.UserID != "" {
		id := uuid.MustParse(req.UserID)
		filter.UserID = &id
	}
	if req.StoreID != "" {
		id := uuid.MustParse(req.StoreID)
		filter.StoreID = &id
	}
	if req.ProductID != "" {
		id := uuid.MustParse(req.ProductID)
		filter.ProductID = &id
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

	entries, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := req.Page, req.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > auditapp.MaxPageSize {
		pageSize = auditapp.MaxPageSize
	}
	h.SuccessWithMeta(c, entries, total, page, pageSize)
}
