package handler

import (
	"context"

	"github.com/ashwinyue/namegen/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	System    *SystemHandler
	Tool      *ToolHandler
	Generate  *GenerateHandler
	Model     *ModelHandler
	SavedName *SavedNameHandler
}

// NewHandlers 创建所有处理器，ping 用于健康检查，可为 nil
func NewHandlers(svc *service.Services, ping func(ctx context.Context) error) *Handlers {
	return &Handlers{
		System:    NewSystemHandler(svc.Config.App.Name, svc.Config.App.Version, ping),
		Tool:      NewToolHandler(svc.Tool),
		Generate:  NewGenerateHandler(svc.Generation),
		Model:     NewModelHandler(svc.Model),
		SavedName: NewSavedNameHandler(svc.SavedName),
	}
}
