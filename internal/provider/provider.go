// Package provider 将 generator.Provider 适配到 eino ChatModel
package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/namegen/internal/config"
	"github.com/ashwinyue/namegen/internal/generator"
)

const (
	countParam   = "count"
	defaultCount = 10
	maxCount     = 50
)

// ChatProvider 基于 eino ChatModel 的名称生成 Provider
type ChatProvider struct {
	chatModel   model.BaseChatModel
	templates   *Templates
	temperature *float32
	log         logrus.FieldLogger
}

// NewChatProvider 使用已有的 ChatModel 创建 Provider
func NewChatProvider(chatModel model.BaseChatModel, templates *Templates, log logrus.FieldLogger) *ChatProvider {
	if templates == nil {
		templates = NewTemplates(nil)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChatProvider{chatModel: chatModel, templates: templates, log: log}
}

// WithTemperature 设置采样温度
func (p *ChatProvider) WithTemperature(t float32) *ChatProvider {
	p.temperature = &t
	return p
}

// NewOpenAIChatModel 创建 OpenAI 兼容的 ChatModel。
// 凭据只从传入的配置读取，httpClient 为空时使用默认客户端。
func NewOpenAIChatModel(ctx context.Context, cfg config.AIConfig, httpClient *http.Client) (model.BaseChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai.apiKey is required")
	}
	modelName := cfg.DefaultModel
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	chatCfg := &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   modelName,
	}
	if cfg.Timeout > 0 {
		chatCfg.Timeout = time.Duration(cfg.Timeout) * time.Second
	}
	if httpClient != nil {
		chatCfg.HTTPClient = httpClient
	}
	return openai.NewChatModel(ctx, chatCfg)
}

// Generate 实现 generator.Provider。
// 渲染提示词 → 以请求中的模型标识调用 ChatModel → 解码回复。
// 回复内容的合法性由 generator.NormalizeResponse 判断，这里只负责解码。
func (p *ChatProvider) Generate(ctx context.Context, req *generator.GenerationRequest) (any, error) {
	params := req.Parameters()

	messages, err := p.templates.Lookup(req.PromptCategory()).Format(ctx, map[string]any{
		"category":   req.PromptCategory(),
		"count":      requestedCount(params),
		"parameters": renderParameters(params),
	})
	if err != nil {
		return nil, fmt.Errorf("format prompt: %w", err)
	}

	opts := []model.Option{model.WithModel(req.ModelIdentifier())}
	if p.temperature != nil {
		opts = append(opts, model.WithTemperature(*p.temperature))
	}

	resp, err := p.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	p.log.WithFields(logrus.Fields{
		"model":    req.ModelIdentifier(),
		"category": req.PromptCategory(),
	}).Debugf("provider reply: %d bytes", len(resp.Content))

	return DecodeNames(resp.Content), nil
}

// requestedCount 读取 count 参数并限制在 [1, maxCount]
func requestedCount(params map[string]any) int {
	n, ok := params[countParam].(float64)
	if !ok || n < 1 {
		return defaultCount
	}
	if n > maxCount {
		return maxCount
	}
	return int(n)
}
