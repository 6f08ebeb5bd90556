package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/namegen/internal/service/aimodel"
)

// ModelHandler 模型处理器
type ModelHandler struct {
	svc *aimodel.Service
}

// NewModelHandler 创建模型处理器
func NewModelHandler(svc *aimodel.Service) *ModelHandler {
	return &ModelHandler{svc: svc}
}

// SetActiveRequest 启用/停用请求
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CreateModel 创建模型
// POST /api/v1/models
func (h *ModelHandler) CreateModel(c *gin.Context) {
	var req aimodel.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	m, err := h.svc.CreateModel(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, m)
}

// ListModels 列出全部模型
// GET /api/v1/models
func (h *ModelHandler) ListModels(c *gin.Context) {
	h.list(c, false)
}

// ListActiveModels 列出激活的模型
// GET /api/v1/models/active
func (h *ModelHandler) ListActiveModels(c *gin.Context) {
	h.list(c, true)
}

func (h *ModelHandler) list(c *gin.Context, activeOnly bool) {
	models, err := h.svc.ListModels(c.Request.Context(), activeOnly)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, models)
}

// SetActive 启用/停用模型
// PUT /api/v1/models/:identifier/active
func (h *ModelHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	m, err := h.svc.SetActive(c.Request.Context(), c.Param("identifier"), *req.IsActive)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, m)
}
