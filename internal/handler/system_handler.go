package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/namegen/internal/icon"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	name    string
	version string
	ping    func(ctx context.Context) error
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(name, version string, ping func(ctx context.Context) error) *SystemHandler {
	return &SystemHandler{name: name, version: version, ping: ping}
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := gin.H{"status": "ok", "name": h.name, "version": h.version}
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}
	c.JSON(http.StatusOK, status)
}

// ListIcons 列出可用的工具图标
// GET /api/v1/icons
func (h *SystemHandler) ListIcons(c *gin.Context) {
	success(c, gin.H{"icons": icon.Names(), "default": icon.Default})
}
