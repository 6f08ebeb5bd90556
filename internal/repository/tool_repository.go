package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/namegen/internal/model"
)

// ToolRepository 工具数据访问
type ToolRepository struct {
	db *gorm.DB
}

// NewToolRepository 创建工具仓库
func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

// Create 创建工具
func (r *ToolRepository) Create(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

// GetBySlug 根据 slug 获取工具
func (r *ToolRepository) GetBySlug(ctx context.Context, slug string) (*model.Tool, error) {
	var tool model.Tool
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tool).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &tool, nil
}

// List 列出工具
func (r *ToolRepository) List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*model.Tool, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Tool{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tools []*model.Tool
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&tools).Error
	return tools, total, err
}

// Update 更新工具
func (r *ToolRepository) Update(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Save(tool).Error
}

// Delete 删除工具
func (r *ToolRepository) Delete(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Tool{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
