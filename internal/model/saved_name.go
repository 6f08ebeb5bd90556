package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedName 用户收藏的生成结果
type SavedName struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID      string    `json:"user_id" gorm:"size:36;index;uniqueIndex:idx_saved_name_unique"`
	Name        string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_saved_name_unique"`
	ToolSlug    string    `json:"tool_slug" gorm:"size:100;index;uniqueIndex:idx_saved_name_unique"`
	FavoritedAt time.Time `json:"favorited_at" gorm:"autoCreateTime"`
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (s *SavedName) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (SavedName) TableName() string {
	return "saved_names"
}
