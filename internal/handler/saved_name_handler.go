package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/namegen/internal/middleware"
	"github.com/ashwinyue/namegen/internal/service/savedname"
)

// SavedNameHandler 收藏处理器，路由需挂在 middleware.RequireUser 之后
type SavedNameHandler struct {
	svc *savedname.Service
}

// NewSavedNameHandler 创建收藏处理器
func NewSavedNameHandler(svc *savedname.Service) *SavedNameHandler {
	return &SavedNameHandler{svc: svc}
}

// SaveName 收藏名称
// POST /api/v1/saved-names
func (h *SavedNameHandler) SaveName(c *gin.Context) {
	var req savedname.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	saved, err := h.svc.Save(c.Request.Context(), userID, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, saved)
}

// ListSavedNames 列出收藏，可按 ?tool= 过滤
// GET /api/v1/saved-names
func (h *SavedNameHandler) ListSavedNames(c *gin.Context) {
	page, size := getPagination(c)
	userID, _ := middleware.GetUserID(c)

	names, total, err := h.svc.List(c.Request.Context(), userID, c.Query("tool"), page, size)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successWithPagination(c, names, total, page, size)
}

// DeleteSavedName 取消收藏
// DELETE /api/v1/saved-names/:id
func (h *SavedNameHandler) DeleteSavedName(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, nil)
}
