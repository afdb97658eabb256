package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenmarket/fridgechef/internal/service"
)

// HealthHandler exposes liveness and the dataset readiness gate.
type HealthHandler struct {
	conv *service.ConversationService
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(conv *service.ConversationService) *HealthHandler {
	return &HealthHandler{conv: conv}
}

// RegisterRoutes registers the health routes on the root router.
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

// Health reports process liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the dataset is loaded and requests can be served.
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.conv.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "dataset unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
