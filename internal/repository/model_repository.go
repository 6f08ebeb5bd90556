// Package repository 提供模型数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/namegen/internal/model"
)

// ModelRepository AI 模型数据访问
type ModelRepository struct {
	db *gorm.DB
}

// NewModelRepository 创建模型仓库
func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

// Create 创建模型
func (r *ModelRepository) Create(ctx context.Context, m *model.AIModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByIdentifier 根据模型标识获取
func (r *ModelRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.AIModel, error) {
	var m model.AIModel
	err := r.db.WithContext(ctx).Where("model_identifier = ?", identifier).First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// List 列出模型
func (r *ModelRepository) List(ctx context.Context, activeOnly bool) ([]*model.AIModel, error) {
	var models []*model.AIModel
	query := r.db.WithContext(ctx).Model(&model.AIModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_name ASC").Find(&models).Error
	return models, err
}

// ListActiveByIdentifiers 在给定标识中查询处于激活状态的模型
func (r *ModelRepository) ListActiveByIdentifiers(ctx context.Context, identifiers []string) ([]*model.AIModel, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}
	var models []*model.AIModel
	err := r.db.WithContext(ctx).
		Where("model_identifier IN ?", identifiers).
		Where("is_active = ?", true).
		Find(&models).Error
	return models, err
}

// Update 更新模型
func (r *ModelRepository) Update(ctx context.Context, m *model.AIModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}
