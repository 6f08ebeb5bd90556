package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/namegen/internal/config"
	"github.com/ashwinyue/namegen/internal/generator"
	"github.com/ashwinyue/namegen/internal/testutil"
)

func newRequest() *generator.GenerationRequest {
	return generator.BuildRequest("fantasy", "gpt-4o", map[string]any{
		"theme": "forest",
		"count": float64(3),
	})
}

func TestChatProvider_Generate(t *testing.T) {
	chat := &testutil.MockChatModel{Replies: []string{`["Aria", "Bran", "Cael"]`}}
	log, _ := testutil.QuietLogger()
	p := NewChatProvider(chat, nil, log).WithTemperature(0.5)

	raw, err := p.Generate(context.Background(), newRequest())
	require.NoError(t, err)
	assert.Equal(t, []any{"Aria", "Bran", "Cael"}, raw)

	require.Equal(t, 1, chat.Calls())
	assert.Equal(t, []string{"gpt-4o"}, chat.Models)

	msgs := chat.Messages[0]
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, "Generate 3 original fantasy character names.")
	assert.Contains(t, msgs[1].Content, "- theme: forest")
}

func TestChatProvider_GenerateError(t *testing.T) {
	boom := errors.New("rate limited")
	chat := &testutil.MockChatModel{Errs: []error{boom}}
	p := NewChatProvider(chat, nil, nil)

	_, err := p.Generate(context.Background(), newRequest())
	assert.ErrorIs(t, err, boom)
}

func TestChatProvider_NormalizedThroughPipeline(t *testing.T) {
	chat := &testutil.MockChatModel{Replies: []string{"```json\n{\"names\": [\" Aria \", \"Aria\", \"\"]}\n```"}}
	p := NewChatProvider(chat, nil, nil)

	raw, err := p.Generate(context.Background(), newRequest())
	resp := generator.NormalizeResponse(raw, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Aria"}, resp.Names)
}

func TestNewOpenAIChatModel_RequiresKey(t *testing.T) {
	_, err := NewOpenAIChatModel(context.Background(), config.AIConfig{}, nil)
	assert.Error(t, err)
}

func TestOpenAIChatModel_AgainstTestServer(t *testing.T) {
	srv := testutil.NewChatCompletionServer(`["Nova", "Orion"]`)
	defer srv.Close()

	cfg := config.AIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1", DefaultModel: "gpt-4o-mini"}
	chatModel, err := NewOpenAIChatModel(context.Background(), cfg, testutil.NewTestClient(srv.Server))
	require.NoError(t, err)

	p := NewChatProvider(chatModel, nil, nil)
	raw, err := p.Generate(context.Background(), newRequest())
	require.NoError(t, err)

	resp := generator.NormalizeResponse(raw, nil)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Nova", "Orion"}, resp.Names)
	assert.Equal(t, 1, srv.Calls())
	assert.Equal(t, "gpt-4o", srv.LastModel.Load())
}

func TestOpenAIChatModel_UpstreamFailure(t *testing.T) {
	srv := testutil.NewChatCompletionServerWithStatus("", http.StatusInternalServerError)
	defer srv.Close()

	cfg := config.AIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}
	chatModel, err := NewOpenAIChatModel(context.Background(), cfg, testutil.NewTestClient(srv.Server))
	require.NoError(t, err)

	raw, err := NewChatProvider(chatModel, nil, nil).Generate(context.Background(), newRequest())
	resp := generator.NormalizeResponse(raw, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "ProviderError")
}
