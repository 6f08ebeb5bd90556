package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/namegen/internal/model"
)

// SavedNameRepository 收藏名称数据访问
type SavedNameRepository struct {
	db *gorm.DB
}

// NewSavedNameRepository 创建收藏名称仓库
func NewSavedNameRepository(db *gorm.DB) *SavedNameRepository {
	return &SavedNameRepository{db: db}
}

// Create 收藏名称，重复收藏时保持原记录并回填到 s
func (r *SavedNameRepository) Create(ctx context.Context, s *model.SavedName) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var existing model.SavedName
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND tool_slug = ?", s.UserID, s.Name, s.ToolSlug).
		First(&existing).Error
	if err != nil {
		return notFound(err)
	}
	*s = existing
	return nil
}

// ListByUser 列出用户收藏，toolSlug 为空时不过滤
func (r *SavedNameRepository) ListByUser(ctx context.Context, userID, toolSlug string, offset, limit int) ([]*model.SavedName, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.SavedName{}).Where("user_id = ?", userID)
	if toolSlug != "" {
		query = query.Where("tool_slug = ?", toolSlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var names []*model.SavedName
	err := query.Order("favorited_at DESC").Offset(offset).Limit(limit).Find(&names).Error
	return names, total, err
}

// Delete 删除收藏，只允许删除自己的记录
func (r *SavedNameRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.SavedName{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
