package handler

import (
	seedapp "github.com/bazaartech/backend/internal/application/seed"
	"github.com/gin-gonic/gin"
)

// SeedHandler exposes the sample-data generator. Intended for
// development and manual testing only; the route is not registered in
// production.
type SeedHandler struct {
	BaseHandler
	service *seedapp.Service
}

// NewSeedHandler creates a SeedHandler
func NewSeedHandler(service *seedapp.Service) *SeedHandler {
	return &SeedHandler{service: service}
}

// Run populates the database with sample data
func (h *SeedHandler) Run(c *gin.Context) {
	summary, err := h.service.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, summary)
}
