package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB        *gorm.DB // 直接访问数据库
	Tool      *ToolRepository
	Model     *ModelRepository
	SavedName *SavedNameRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:        db,
		Tool:      NewToolRepository(db),
		Model:     NewModelRepository(db),
		SavedName: NewSavedNameRepository(db),
	}
}

// notFound 将 gorm 的记录不存在错误转换为 ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
