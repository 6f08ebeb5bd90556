package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/namegen/internal/generator"
	"github.com/ashwinyue/namegen/internal/service/generation"
)

// GenerateHandler 名称生成处理器
type GenerateHandler struct {
	svc *generation.Service
}

// NewGenerateHandler 创建生成处理器
func NewGenerateHandler(svc *generation.Service) *GenerateHandler {
	return &GenerateHandler{svc: svc}
}

// GenerateResult 生成接口返回的数据
type GenerateResult struct {
	*generator.GenerationResponse
	Model    string `json:"model"`
	Attempts int    `json:"attempts"`
}

// bindGenerate 请求体可以为空，此时全部使用默认参数
func bindGenerate(c *gin.Context) (*generation.GenerateRequest, bool) {
	var req generation.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return nil, false
	}
	return &req, true
}

// Generate 生成名称。Provider 失败时仍返回 200，success=false 并携带错误信息。
// POST /api/v1/tools/:slug/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	req, ok := bindGenerate(c)
	if !ok {
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, GenerateResult{
		GenerationResponse: res.Response,
		Model:              res.Request.ModelIdentifier(),
		Attempts:           res.Attempts,
	})
}

// Preview 返回将要发送给 Provider 的请求，不实际调用
// POST /api/v1/tools/:slug/preview
func (h *GenerateHandler) Preview(c *gin.Context) {
	req, ok := bindGenerate(c)
	if !ok {
		return
	}

	genReq, err := h.svc.Preview(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, genReq)
}
