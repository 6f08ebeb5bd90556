package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ashwinyue/namegen/internal/cache"
	"github.com/ashwinyue/namegen/internal/generator"
	"github.com/ashwinyue/namegen/internal/icon"
	"github.com/ashwinyue/namegen/internal/model"
	"github.com/ashwinyue/namegen/internal/repository"
)

var (
	// ErrToolExists slug 已被占用
	ErrToolExists = errors.New("tool slug already exists")
	// ErrInvalidTool 工具定义不合法
	ErrInvalidTool = errors.New("invalid tool definition")
)

// Service 工具服务
type Service struct {
	repo  repository.ToolStore
	cache *cache.ToolCache
}

// NewService 创建工具服务
func NewService(repo repository.ToolStore, toolCache *cache.ToolCache) *Service {
	return &Service{repo: repo, cache: toolCache}
}

// SaveToolRequest 创建/更新工具请求
type SaveToolRequest struct {
	Slug              string                  `json:"slug" binding:"required"`
	Name              string                  `json:"name" binding:"required"`
	Description       string                  `json:"description"`
	Icon              string                  `json:"icon"`
	PromptCategory    string                  `json:"ai_prompt_category" binding:"required"`
	DefaultModel      string                  `json:"default_ai_model_identifier"`
	AvailableModels   []string                `json:"available_ai_model_identifiers"`
	DefaultParameters map[string]any          `json:"default_parameters"`
	Fields            []generator.FieldSchema `json:"configurable_fields"`
	Published         bool                    `json:"is_published"`
}

func (r *SaveToolRequest) definition() *generator.ToolDefinition {
	return &generator.ToolDefinition{
		Slug:              strings.TrimSpace(r.Slug),
		Name:              r.Name,
		PromptCategory:    r.PromptCategory,
		DefaultModel:      r.DefaultModel,
		AvailableModels:   r.AvailableModels,
		DefaultParameters: r.DefaultParameters,
		Fields:            r.Fields,
		Published:         r.Published,
	}
}

// validate 校验字段定义、模型配置与图标
func (r *SaveToolRequest) validate() (*generator.ToolDefinition, error) {
	def := r.definition()
	if def.Slug == "" {
		return nil, fmt.Errorf("%w: slug is empty", ErrInvalidTool)
	}
	if err := generator.ValidateTool(def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTool, err)
	}
	if r.Icon != "" {
		if _, err := icon.Resolve(r.Icon); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTool, err)
		}
	}
	return def, nil
}

// CreateTool 创建工具
func (s *Service) CreateTool(ctx context.Context, req *SaveToolRequest) (*model.Tool, error) {
	def, err := req.validate()
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySlug(ctx, def.Slug); err == nil {
		return nil, ErrToolExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tool slug: %w", err)
	}

	tool := &model.Tool{Description: req.Description, Icon: req.Icon}
	tool.ApplyDefinition(def)

	if err := s.repo.Create(ctx, tool); err != nil {
		return nil, fmt.Errorf("failed to create tool: %w", err)
	}
	return tool, nil
}

// GetTool 获取工具
func (s *Service) GetTool(ctx context.Context, slug string) (*model.Tool, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// ListToolsRequest 列出工具请求
type ListToolsRequest struct {
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	PublishedOnly bool `json:"published_only"`
}

// ListTools 列出工具
func (s *Service) ListTools(ctx context.Context, req *ListToolsRequest) ([]*model.Tool, int64, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Size <= 0 || req.Size > 100 {
		req.Size = 20
	}

	offset := (req.Page - 1) * req.Size
	return s.repo.List(ctx, req.PublishedOnly, offset, req.Size)
}

// UpdateTool 更新工具，slug 允许修改，新旧 slug 的缓存都会失效
func (s *Service) UpdateTool(ctx context.Context, slug string, req *SaveToolRequest) (*model.Tool, error) {
	def, err := req.validate()
	if err != nil {
		return nil, err
	}

	tool, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if def.Slug != slug {
		if _, err := s.repo.GetBySlug(ctx, def.Slug); err == nil {
			return nil, ErrToolExists
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check tool slug: %w", err)
		}
	}

	tool.Description = req.Description
	tool.Icon = req.Icon
	tool.ApplyDefinition(def)

	if err := s.repo.Update(ctx, tool); err != nil {
		return nil, fmt.Errorf("failed to update tool: %w", err)
	}

	s.cache.Invalidate(ctx, slug)
	s.cache.Invalidate(ctx, def.Slug)
	return tool, nil
}

// DeleteTool 删除工具
func (s *Service) DeleteTool(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, slug)
	return nil
}

// GetToolDefinition 读取工具定义，优先走缓存。实现 generator.ToolSource。
func (s *Service) GetToolDefinition(ctx context.Context, slug string) (*generator.ToolDefinition, error) {
	if def, ok := s.cache.Get(ctx, slug); ok {
		return def, nil
	}

	tool, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", generator.ErrToolNotFound, slug)
		}
		return nil, fmt.Errorf("failed to load tool %q: %w", slug, err)
	}

	def := tool.ToDefinition()
	s.cache.Set(ctx, def)
	return def, nil
}
