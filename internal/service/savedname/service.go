// Package savedname 提供名称收藏服务
package savedname

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ashwinyue/namegen/internal/model"
	"github.com/ashwinyue/namegen/internal/repository"
)

// ErrInvalidName 名称为空
var ErrInvalidName = errors.New("name is empty")

// Service 收藏服务
type Service struct {
	repo repository.SavedNameStore
}

// NewService 创建收藏服务
func NewService(repo repository.SavedNameStore) *Service {
	return &Service{repo: repo}
}

// SaveRequest 收藏请求
type SaveRequest struct {
	Name     string `json:"name" binding:"required"`
	ToolSlug string `json:"tool_slug" binding:"required"`
}

// Save 收藏名称，重复收藏不报错
func (s *Service) Save(ctx context.Context, userID string, req *SaveRequest) (*model.SavedName, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	saved := &model.SavedName{
		UserID:   userID,
		Name:     name,
		ToolSlug: req.ToolSlug,
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save name: %w", err)
	}
	return saved, nil
}

// List 列出收藏
func (s *Service) List(ctx context.Context, userID, toolSlug string, page, size int) ([]*model.SavedName, int64, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.repo.ListByUser(ctx, userID, toolSlug, (page-1)*size, size)
}

// Delete 取消收藏
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, id, userID)
}
