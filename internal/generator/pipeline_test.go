package generator

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== Mock 依赖 ==========

type mockToolSource struct {
	tools map[string]*ToolDefinition
	err   error
}

func (m *mockToolSource) GetToolDefinition(ctx context.Context, slug string) (*ToolDefinition, error) {
	if m.err != nil {
		return nil, m.err
	}
	tool, ok := m.tools[slug]
	if !ok {
		return nil, ErrToolNotFound
	}
	return tool, nil
}

type mockModelSource struct {
	models []AIModel
}

func (m *mockModelSource) ListActiveModels(ctx context.Context, identifiers []string) ([]AIModel, error) {
	var out []AIModel
	for _, model := range m.models {
		for _, id := range identifiers {
			if model.Identifier == id && model.Active {
				out = append(out, model)
			}
		}
	}
	return out, nil
}

type mockProvider struct {
	mu       sync.Mutex
	replies  []any
	errs     []error
	requests []*GenerationRequest
	block    bool
}

func (m *mockProvider) Generate(ctx context.Context, req *GenerationRequest) (any, error) {
	m.mu.Lock()
	i := len(m.requests)
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(m.replies) {
		return m.replies[i], nil
	}
	return nil, nil
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func styleTool() *ToolDefinition {
	return &ToolDefinition{
		ID:              "t1",
		Slug:            "pet-names",
		Name:            "Pet Names",
		PromptCategory:  "pet",
		DefaultModel:    "m1",
		AvailableModels: []string{"m1", "m2"},
		Fields: []FieldSchema{
			{Name: "style", Type: FieldSelect, Options: []string{"short", "long"}, Required: true},
		},
		Published: true,
	}
}

func newTestPipeline(provider Provider, opts Options) *Pipeline {
	tools := &mockToolSource{tools: map[string]*ToolDefinition{"pet-names": styleTool()}}
	models := &mockModelSource{models: []AIModel{{Identifier: "m1", Active: true}, {Identifier: "m2"}}}
	return NewPipeline(tools, models, provider, opts, quietLogger())
}

// ========== 端到端 ==========

func TestPipeline_Run_Success(t *testing.T) {
	provider := &mockProvider{replies: []any{[]any{"Aria", "Aria", "Luna"}}}
	p := newTestPipeline(provider, DefaultOptions())

	res, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: map[string]any{"style": "short"}})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"style": "short"}, res.Request.Parameters())
	assert.Equal(t, "m1", res.Request.ModelIdentifier())
	assert.Equal(t, "pet", res.Request.PromptCategory())
	assert.Equal(t, &GenerationResponse{Success: true, Names: []string{"Aria", "Luna"}}, res.Response)
	assert.Equal(t, 1, res.Attempts)
}

func TestPipeline_Run_MissingRequiredFieldNeverCallsProvider(t *testing.T) {
	provider := &mockProvider{}
	p := newTestPipeline(provider, DefaultOptions())

	res, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: map[string]any{}})
	require.Error(t, err)
	assert.Nil(t, res)

	var pve *ParameterValidationError
	require.ErrorAs(t, err, &pve)
	assert.ErrorIs(t, pve.FieldErrors()["style"], ErrMissingRequiredField)
	assert.Equal(t, 0, provider.calls())
}

func TestPipeline_Run_ModelErrors(t *testing.T) {
	provider := &mockProvider{}
	p := newTestPipeline(provider, DefaultOptions())
	params := map[string]any{"style": "long"}

	_, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: params, Model: "m3"})
	assert.ErrorIs(t, err, ErrModelNotAllowed)

	_, err = p.Run(context.Background(), Input{Slug: "pet-names", Parameters: params, Model: "m2"})
	assert.ErrorIs(t, err, ErrModelInactive)

	assert.Equal(t, 0, provider.calls())
}

func TestPipeline_Run_UnknownOrUnpublishedTool(t *testing.T) {
	unpublished := styleTool()
	unpublished.Published = false
	tools := &mockToolSource{tools: map[string]*ToolDefinition{"draft": unpublished}}
	p := NewPipeline(tools, &mockModelSource{}, &mockProvider{}, DefaultOptions(), quietLogger())

	_, err := p.Run(context.Background(), Input{Slug: "missing"})
	assert.ErrorIs(t, err, ErrToolNotFound)

	_, err = p.Run(context.Background(), Input{Slug: "draft"})
	assert.ErrorIs(t, err, ErrToolNotFound)
}

// ========== Provider 失败与重试 ==========

func TestPipeline_Run_RetriesOnceOnProviderError(t *testing.T) {
	provider := &mockProvider{
		errs:    []error{errors.New("503 from upstream")},
		replies: []any{nil, []any{"Nova"}},
	}
	p := newTestPipeline(provider, Options{Timeout: time.Second, MaxRetries: 1})

	res, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: map[string]any{"style": "short"}})
	require.NoError(t, err)
	assert.True(t, res.Response.Success)
	assert.Equal(t, []string{"Nova"}, res.Response.Names)
	assert.Equal(t, 2, res.Attempts)
}

func TestPipeline_Run_ProviderErrorAfterRetry(t *testing.T) {
	provider := &mockProvider{errs: []error{errors.New("boom"), errors.New("boom again")}}
	p := newTestPipeline(provider, Options{Timeout: time.Second, MaxRetries: 5})

	res, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: map[string]any{"style": "short"}})
	require.NoError(t, err)
	assert.False(t, res.Response.Success)
	assert.Equal(t, "ProviderError: boom again", res.Response.Error)
	assert.Equal(t, 2, provider.calls(), "retries are capped at one")
}

func TestPipeline_Run_MalformedReplyIsNotRetried(t *testing.T) {
	provider := &mockProvider{replies: []any{"just a string"}}
	p := newTestPipeline(provider, DefaultOptions())

	res, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: map[string]any{"style": "short"}})
	require.NoError(t, err)
	assert.Equal(t, "EmptyOrMalformedResponse", res.Response.Error)
	assert.Equal(t, 1, provider.calls())
}

func TestPipeline_Run_Timeout(t *testing.T) {
	provider := &mockProvider{block: true}
	p := newTestPipeline(provider, Options{Timeout: 20 * time.Millisecond, MaxRetries: 0})

	res, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: map[string]any{"style": "short"}})
	require.NoError(t, err)
	assert.False(t, res.Response.Success)
	assert.Contains(t, res.Response.Error, "ProviderError")
	assert.Contains(t, res.Response.Error, "timed out")
}

func TestPipeline_Run_CanceledByCaller(t *testing.T) {
	provider := &mockProvider{block: true}
	p := newTestPipeline(provider, Options{Timeout: time.Second, MaxRetries: 1})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res, err := p.Run(ctx, Input{Slug: "pet-names", Parameters: map[string]any{"style": "short"}})
	require.NoError(t, err)
	assert.False(t, res.Response.Success)
	assert.Empty(t, res.Response.Names)
	assert.Equal(t, 1, provider.calls(), "a canceled call is not retried")
}

func TestPipeline_Run_Concurrent(t *testing.T) {
	provider := &mockProvider{}
	for i := 0; i < 20; i++ {
		provider.replies = append(provider.replies, []any{"Aria"})
	}
	p := newTestPipeline(provider, DefaultOptions())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.Run(context.Background(), Input{Slug: "pet-names", Parameters: map[string]any{"style": "long"}})
			assert.NoError(t, err)
			assert.True(t, res.Response.Success)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, provider.calls())
}
