package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/namegen/internal/service/tool"
)

// ToolHandler 工具处理器
type ToolHandler struct {
	svc *tool.Service
}

// NewToolHandler 创建工具处理器
func NewToolHandler(svc *tool.Service) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// CreateTool 创建工具
// POST /api/v1/tools
func (h *ToolHandler) CreateTool(c *gin.Context) {
	var req tool.SaveToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	t, err := h.svc.CreateTool(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, t)
}

// GetTool 获取工具
// GET /api/v1/tools/:slug
func (h *ToolHandler) GetTool(c *gin.Context) {
	t, err := h.svc.GetTool(c.Request.Context(), c.Param("slug"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, t)
}

// ListTools 列出工具，默认只返回已发布的工具，?all=true 返回全部
// GET /api/v1/tools
func (h *ToolHandler) ListTools(c *gin.Context) {
	page, size := getPagination(c)

	tools, total, err := h.svc.ListTools(c.Request.Context(), &tool.ListToolsRequest{
		Page:          page,
		Size:          size,
		PublishedOnly: c.Query("all") != "true",
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	successWithPagination(c, tools, total, page, size)
}

// UpdateTool 更新工具
// PUT /api/v1/tools/:slug
func (h *ToolHandler) UpdateTool(c *gin.Context) {
	var req tool.SaveToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	t, err := h.svc.UpdateTool(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, t)
}

// DeleteTool 删除工具
// DELETE /api/v1/tools/:slug
func (h *ToolHandler) DeleteTool(c *gin.Context) {
	if err := h.svc.DeleteTool(c.Request.Context(), c.Param("slug")); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, nil)
}
