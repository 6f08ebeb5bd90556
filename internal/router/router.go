package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/namegen/internal/handler"
	"github.com/ashwinyue/namegen/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, jwtSecret string, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(jwtSecret))

	// 健康检查
	r.GET("/health", h.System.Health)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/icons", h.System.ListIcons)

		// Tool 生成工具
		tools := v1.Group("/tools")
		{
			tools.GET("", h.Tool.ListTools)
			tools.POST("", h.Tool.CreateTool)
			tools.GET("/:slug", h.Tool.GetTool)
			tools.PUT("/:slug", h.Tool.UpdateTool)
			tools.DELETE("/:slug", h.Tool.DeleteTool)
			tools.POST("/:slug/generate", h.Generate.Generate)
			tools.POST("/:slug/preview", h.Generate.Preview)
		}

		// Model AI 模型
		models := v1.Group("/models")
		{
			models.GET("", h.Model.ListModels)
			models.POST("", h.Model.CreateModel)
			models.GET("/active", h.Model.ListActiveModels)
			models.PUT("/:identifier/active", h.Model.SetActive)
		}

		// SavedName 收藏
		saved := v1.Group("/saved-names", middleware.RequireUser())
		{
			saved.POST("", h.SavedName.SaveName)
			saved.GET("", h.SavedName.ListSavedNames)
			saved.DELETE("/:id", h.SavedName.DeleteSavedName)
		}
	}

	return r
}
