package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/walletconnect/internal/app"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// statsTimeout bounds how long a health check waits on the store
const statsTimeout = 500 * time.Millisecond

// Handlers contains HTTP handlers for health checks
type Handlers struct {
	app *app.App
}

// NewHandlers creates a new health handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{app: app}
}

// HealthCheckHandler handles the health check endpoint
func (h *Handlers) HealthCheckHandler(c *gin.Context) {
	uptime := time.Since(h.app.StartTime).String()

	// A slow store must not fail the health check; report what we have
	ctx, cancel := context.WithTimeout(c.Request.Context(), statsTimeout)
	defer cancel()

	storeStatus := "ok"
	stats, err := h.app.Store.Stats(ctx)
	if err != nil {
		h.app.Logger.Printf("Health check could not read session stats: %v", err)
		storeStatus = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"store":           storeStatus,
		"uptime":          uptime,
		"version":         Version,
		"total_sessions":  stats.Total,
		"linked_sessions": stats.Linked,
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}

// HealthCheckHandlerWithSlash handles the health check endpoint with trailing slash
func (h *Handlers) HealthCheckHandlerWithSlash(c *gin.Context) {
	h.HealthCheckHandler(c)
}
