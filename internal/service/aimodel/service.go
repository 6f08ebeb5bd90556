// Package aimodel 提供 AI 模型管理服务
package aimodel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/ashwinyue/namegen/internal/generator"
	"github.com/ashwinyue/namegen/internal/model"
	"github.com/ashwinyue/namegen/internal/repository"
)

// ErrModelExists 模型标识已存在
var ErrModelExists = errors.New("model identifier already exists")

// Service 模型服务
type Service struct {
	repo repository.ModelStore
}

// NewService 创建模型服务
func NewService(repo repository.ModelStore) *Service {
	return &Service{repo: repo}
}

// CreateModelRequest 创建模型请求
type CreateModelRequest struct {
	Identifier   string   `json:"model_identifier" binding:"required"`
	DisplayName  string   `json:"display_name" binding:"required"`
	ProviderName string   `json:"provider_name"`
	Capabilities []string `json:"capabilities_tags"`
	IsActive     bool     `json:"is_active"`
}

// CreateModel 创建模型
func (s *Service) CreateModel(ctx context.Context, req *CreateModelRequest) (*model.AIModel, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, fmt.Errorf("model_identifier is empty")
	}

	if _, err := s.repo.GetByIdentifier(ctx, identifier); err == nil {
		return nil, ErrModelExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check model identifier: %w", err)
	}

	m := &model.AIModel{
		Identifier:   identifier,
		DisplayName:  req.DisplayName,
		ProviderName: req.ProviderName,
		Capabilities: datatypes.NewJSONType(req.Capabilities),
		IsActive:     req.IsActive,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return m, nil
}

// ListModels 列出模型
func (s *Service) ListModels(ctx context.Context, activeOnly bool) ([]*model.AIModel, error) {
	return s.repo.List(ctx, activeOnly)
}

// SetActive 启用/停用模型
func (s *Service) SetActive(ctx context.Context, identifier string, active bool) (*model.AIModel, error) {
	m, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	m.IsActive = active
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update model: %w", err)
	}
	return m, nil
}

// ListActiveModels 实现 generator.ModelSource
func (s *Service) ListActiveModels(ctx context.Context, identifiers []string) ([]generator.AIModel, error) {
	models, err := s.repo.ListActiveByIdentifiers(ctx, identifiers)
	if err != nil {
		return nil, err
	}
	out := make([]generator.AIModel, 0, len(models))
	for _, m := range models {
		out = append(out, m.ToGenerator())
	}
	return out, nil
}
