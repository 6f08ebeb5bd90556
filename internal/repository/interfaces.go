// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/ashwinyue/namegen/internal/model"
)

// ToolStore 工具数据访问接口
type ToolStore interface {
	Create(ctx context.Context, tool *model.Tool) error
	GetBySlug(ctx context.Context, slug string) (*model.Tool, error)
	List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*model.Tool, int64, error)
	Update(ctx context.Context, tool *model.Tool) error
	Delete(ctx context.Context, slug string) error
}

// ModelStore AI 模型数据访问接口
type ModelStore interface {
	Create(ctx context.Context, m *model.AIModel) error
	GetByIdentifier(ctx context.Context, identifier string) (*model.AIModel, error)
	List(ctx context.Context, activeOnly bool) ([]*model.AIModel, error)
	ListActiveByIdentifiers(ctx context.Context, identifiers []string) ([]*model.AIModel, error)
	Update(ctx context.Context, m *model.AIModel) error
}

// SavedNameStore 收藏名称数据访问接口
type SavedNameStore interface {
	Create(ctx context.Context, s *model.SavedName) error
	ListByUser(ctx context.Context, userID, toolSlug string, offset, limit int) ([]*model.SavedName, int64, error)
	Delete(ctx context.Context, id, userID string) error
}

// 确保实现了接口
var (
	_ ToolStore      = (*ToolRepository)(nil)
	_ ModelStore     = (*ModelRepository)(nil)
	_ SavedNameStore = (*SavedNameRepository)(nil)
)
