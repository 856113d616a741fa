package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/bazaartech/backend/internal/infrastructure/persistence"
	"github.com/bazaartech/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// QueueProber reports the depth of the reconciliation queue
type QueueProber interface {
	Len(ctx context.Context) (int64, error)
}

// SystemHandler serves health and system info endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	queue     QueueProber
	startTime time.Time
}

// NewSystemHandler creates a SystemHandler
func NewSystemHandler(db *persistence.Database, queue QueueProber) *SystemHandler {
	return &SystemHandler{
		db:        db,
		queue:     queue,
		startTime: time.Now(),
	}
}

// Health reports liveness of the service and its dependencies. A failed
// database ping makes the whole check unhealthy; a queue probe failure
// is reported but does not fail the check.
func (h *SystemHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "ok",
	}

	if err := h.db.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = "error"
	}

	if h.queue != nil {
		if depth, err := h.queue.Len(c.Request.Context()); err != nil {
			body["queue"] = "error"
		} else {
			body["queue"] = "ok"
			body["queue_depth"] = depth
		}
	}

	c.JSON(status, body)
}

// SystemInfoResponse is the shape of GET /system/info
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info returns basic system information
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:      "Inventory Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}))
}

// Ping is a trivial responsiveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message":   "pong",
		"timestamp": time.Now().Format(time.RFC3339),
	}))
}
