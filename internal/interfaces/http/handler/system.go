package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves process-level endpoints.
type SystemHandler struct {
	BaseHandler
	appName string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName string) *SystemHandler {
	return &SystemHandler{appName: appName, started: time.Now()}
}

// Health reports liveness.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"app":    h.appName,
		"uptime": time.Since(h.started).String(),
	})
}
