package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/ride-records/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "Healthy")
}

// Ready handles GET /ready. It answers 503 when any dependency check fails.
func (h *Handlers) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	status := http.StatusOK
	deps := gin.H{}

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.Logger.Warn("Readiness check failed", logger.String("dependency", name), logger.Err(err))
			deps[name] = gin.H{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = gin.H{"status": "up"}
	}

	overall := "ready"
	if status != http.StatusOK {
		overall = "unavailable"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
