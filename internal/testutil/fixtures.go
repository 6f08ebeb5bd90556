// Package testutil 提供测试辅助工具
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/datatypes"

	"github.com/ashwinyue/namegen/internal/generator"
	namemodel "github.com/ashwinyue/namegen/internal/model"
	"github.com/ashwinyue/namegen/internal/repository"
)

// ========== 上下文 ==========

// CanceledContext 返回已取消的 context
func CanceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// QuietLogger 返回丢弃输出的 logger 及其 hook，可用于断言日志
func QuietLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// ========== 工具与模型数据 ==========

func ptr[T any](v T) *T { return &v }

// StoryFields 一组覆盖常见字段类型的定义
func StoryFields() []generator.FieldSchema {
	return []generator.FieldSchema{
		{Name: "theme", Label: "Theme", Type: generator.FieldText, Required: true},
		{Name: "count", Label: "Count", Type: generator.FieldNumber, Default: float64(10), Min: ptr(1.0), Max: ptr(50.0)},
		{Name: "style", Label: "Style", Type: generator.FieldSelect, Options: []string{"epic", "cute", "dark"}, Default: "epic"},
		{Name: "rhyme", Label: "Rhyme", Type: generator.FieldSwitch},
	}
}

// NewTool 构造一个已发布的工具
func NewTool(slug string, models ...string) *namemodel.Tool {
	def := &generator.ToolDefinition{
		Slug:              slug,
		Name:              slug,
		PromptCategory:    "fantasy",
		AvailableModels:   models,
		DefaultParameters: map[string]any{"style": "dark"},
		Fields:            StoryFields(),
		Published:         true,
	}
	if len(models) > 0 {
		def.DefaultModel = models[0]
	}
	t := &namemodel.Tool{ID: uuid.NewString()}
	t.ApplyDefinition(def)
	return t
}

// NewAIModel 构造 AI 模型
func NewAIModel(identifier string, active bool) *namemodel.AIModel {
	return &namemodel.AIModel{
		ID:           uuid.NewString(),
		Identifier:   identifier,
		DisplayName:  identifier,
		ProviderName: "openai",
		Capabilities: datatypes.NewJSONType([]string{"text"}),
		IsActive:     active,
	}
}

// ========== 内存仓库 ==========

// ToolStore 内存版 repository.ToolStore
type ToolStore struct {
	mu    sync.Mutex
	tools map[string]*namemodel.Tool
	Err   error
}

// NewToolStore 创建内存工具仓库
func NewToolStore(tools ...*namemodel.Tool) *ToolStore {
	s := &ToolStore{tools: make(map[string]*namemodel.Tool)}
	for _, t := range tools {
		s.tools[t.Slug] = t
	}
	return s
}

func (s *ToolStore) Create(ctx context.Context, tool *namemodel.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if tool.ID == "" {
		tool.ID = uuid.NewString()
	}
	s.tools[tool.Slug] = tool
	return nil
}

func (s *ToolStore) GetBySlug(ctx context.Context, slug string) (*namemodel.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.tools[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (s *ToolStore) List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*namemodel.Tool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	var all []*namemodel.Tool
	for _, t := range s.tools {
		if publishedOnly && !t.IsPublished {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })
	return page(all, offset, limit), int64(len(all)), nil
}

func (s *ToolStore) Update(ctx context.Context, tool *namemodel.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for slug, t := range s.tools {
		if t.ID == tool.ID {
			delete(s.tools, slug)
		}
	}
	s.tools[tool.Slug] = tool
	return nil
}

func (s *ToolStore) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tools[slug]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tools, slug)
	return nil
}

// ModelStore 内存版 repository.ModelStore
type ModelStore struct {
	mu     sync.Mutex
	models map[string]*namemodel.AIModel
	Err    error
}

// NewModelStore 创建内存模型仓库
func NewModelStore(models ...*namemodel.AIModel) *ModelStore {
	s := &ModelStore{models: make(map[string]*namemodel.AIModel)}
	for _, m := range models {
		s.models[m.Identifier] = m
	}
	return s
}

func (s *ModelStore) Create(ctx context.Context, m *namemodel.AIModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.models[m.Identifier] = m
	return nil
}

func (s *ModelStore) GetByIdentifier(ctx context.Context, identifier string) (*namemodel.AIModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.models[identifier]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (s *ModelStore) List(ctx context.Context, activeOnly bool) ([]*namemodel.AIModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*namemodel.AIModel
	for _, m := range s.models {
		if activeOnly && !m.IsActive {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out, nil
}

func (s *ModelStore) ListActiveByIdentifiers(ctx context.Context, identifiers []string) ([]*namemodel.AIModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*namemodel.AIModel
	for _, id := range identifiers {
		if m, ok := s.models[id]; ok && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *ModelStore) Update(ctx context.Context, m *namemodel.AIModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[m.Identifier] = m
	return nil
}

// SavedNameStore 内存版 repository.SavedNameStore，同一用户同一工具的同名收藏只保留一条
type SavedNameStore struct {
	mu    sync.Mutex
	names []*namemodel.SavedName
}

// NewSavedNameStore 创建内存收藏仓库
func NewSavedNameStore() *SavedNameStore {
	return &SavedNameStore{}
}

func (s *SavedNameStore) Create(ctx context.Context, n *namemodel.SavedName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.names {
		if existing.UserID == n.UserID && existing.Name == n.Name && existing.ToolSlug == n.ToolSlug {
			*n = *existing
			return nil
		}
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	s.names = append(s.names, n)
	return nil
}

func (s *SavedNameStore) ListByUser(ctx context.Context, userID, toolSlug string, offset, limit int) ([]*namemodel.SavedName, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*namemodel.SavedName
	for _, n := range s.names {
		if n.UserID != userID || (toolSlug != "" && n.ToolSlug != toolSlug) {
			continue
		}
		out = append(out, n)
	}
	return page(out, offset, limit), int64(len(out)), nil
}

func (s *SavedNameStore) Delete(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.names {
		if n.ID == id && n.UserID == userID {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

var (
	_ repository.ToolStore      = (*ToolStore)(nil)
	_ repository.ModelStore     = (*ModelStore)(nil)
	_ repository.SavedNameStore = (*SavedNameStore)(nil)
)

// ========== ChatModel ==========

// MockChatModel 可编程的 model.BaseChatModel，按顺序返回 Replies / Errs
type MockChatModel struct {
	mu       sync.Mutex
	Replies  []string
	Errs     []error
	calls    int
	Models   []string
	Messages [][]*schema.Message
}

// Generate 实现 model.BaseChatModel
func (m *MockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.calls
	m.calls++
	m.Messages = append(m.Messages, input)
	if o := model.GetCommonOptions(nil, opts...); o.Model != nil {
		m.Models = append(m.Models, *o.Model)
	}

	if i < len(m.Errs) && m.Errs[i] != nil {
		return nil, m.Errs[i]
	}
	if len(m.Replies) == 0 {
		return nil, fmt.Errorf("no reply configured")
	}
	if i >= len(m.Replies) {
		i = len(m.Replies) - 1
	}
	return schema.AssistantMessage(m.Replies[i], nil), nil
}

// Stream 实现 model.BaseChatModel，一次性返回完整回复
func (m *MockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// Calls 返回调用次数
func (m *MockChatModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ model.BaseChatModel = (*MockChatModel)(nil)
