package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/namegen/internal/generator"
	"github.com/ashwinyue/namegen/internal/repository"
	"github.com/ashwinyue/namegen/internal/service/aimodel"
	"github.com/ashwinyue/namegen/internal/service/savedname"
	"github.com/ashwinyue/namegen/internal/service/tool"
)

// Response 统一响应格式
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	ErrorCode string      `json:"error_code,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// FieldErrorData 单个字段错误
type FieldErrorData struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// PaginationData 分页响应数据结构
type PaginationData struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages,omitempty"`
}

// success 成功响应
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// badRequest 请求体错误
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: msg})
}

// successWithPagination 分页成功响应
func successWithPagination(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	success(c, PaginationData{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// errorResponse 根据错误类型返回相应的状态码，字段错误逐个返回
func errorResponse(c *gin.Context, err error) {
	resp := Response{Code: -1, Message: err.Error(), ErrorCode: generator.Code(err)}

	var pve *generator.ParameterValidationError
	if errors.As(err, &pve) {
		fields := make(map[string]FieldErrorData, len(pve.Errors))
		for name, fe := range pve.FieldErrors() {
			fields[name] = FieldErrorData{Code: generator.Code(fe), Detail: fe.Detail}
		}
		resp.Data = gin.H{"fields": fields}
	}

	c.JSON(statusOf(err), resp)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, tool.ErrInvalidTool),
		errors.Is(err, savedname.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, generator.ErrToolNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tool.ErrToolExists),
		errors.Is(err, aimodel.ErrModelExists):
		return http.StatusConflict
	}

	// 工具自身配置错误属于数据一致性问题
	if errors.Is(err, generator.ErrInvalidSchema) {
		return http.StatusInternalServerError
	}

	switch generator.Code(err) {
	case "ParameterValidationError", generator.ErrModelNotAllowed.Error():
		return http.StatusUnprocessableEntity
	case generator.ErrModelInactive.Error(), generator.ErrNoModelAvailable.Error():
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// getPagination 获取分页参数
func getPagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return
}
