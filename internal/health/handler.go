// Package health provides the health check endpoint.
package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/purpleworks/workshop/internal/database/database"
)

// Check verifies one dependency.
type Check func(ctx context.Context) error

// DatabaseCheck pings a SQL team store.
func DatabaseCheck(db *gorm.DB) Check {
	return func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	}
}

// Handler handles health check requests.
type Handler struct {
	checks  map[string]Check
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// New creates a health handler running the named checks.
func New(checks map[string]Check, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		checks:  checks,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := Response{Status: "ok", Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warnw("health check failed", "check", name, "error", err)
			resp.Status = "unhealthy"
			resp.Checks[name] = "unhealthy"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers the health endpoint.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.GET("/health", h.Check)
}
