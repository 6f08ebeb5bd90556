package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ToolSource 读取工具定义（外部只读数据）
type ToolSource interface {
	GetToolDefinition(ctx context.Context, slug string) (*ToolDefinition, error)
}

// ModelSource 读取给定标识中处于激活状态的模型
type ModelSource interface {
	ListActiveModels(ctx context.Context, identifiers []string) ([]AIModel, error)
}

// Provider 外部 AI 文本生成接口。返回值为解码后的原始回复，交由 NormalizeResponse 校验。
type Provider interface {
	Generate(ctx context.Context, req *GenerationRequest) (any, error)
}

// Options 流水线运行参数
type Options struct {
	// Timeout 单次 Provider 调用超时
	Timeout time.Duration
	// MaxRetries Provider 失败后的重试次数，最多 1 次
	MaxRetries int
}

// DefaultOptions 默认运行参数
func DefaultOptions() Options {
	return Options{Timeout: 30 * time.Second, MaxRetries: 1}
}

// Input 一次生成调用的输入
type Input struct {
	Slug       string         `json:"slug"`
	Parameters map[string]any `json:"parameters"`
	Model      string         `json:"model,omitempty"`
}

// Result 一次生成调用的结果
type Result struct {
	Request  *GenerationRequest  `json:"request"`
	Response *GenerationResponse `json:"response"`
	Attempts int                 `json:"attempts"`
}

// Pipeline 生成流水线，无共享可变状态，可并发使用
type Pipeline struct {
	tools    ToolSource
	models   ModelSource
	provider Provider
	opts     Options
	log      logrus.FieldLogger
}

// NewPipeline 创建流水线
func NewPipeline(tools ToolSource, models ModelSource, provider Provider, opts Options, log logrus.FieldLogger) *Pipeline {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxRetries > 1 {
		// 同一请求多次调用可能得到不同结果，最多重试一次
		opts.MaxRetries = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{tools: tools, models: models, provider: provider, opts: opts, log: log}
}

// Prepare 执行纯校验阶段：查工具 → 合并参数 → 选模型 → 构建请求。
// 参数校验失败时不会构建请求。
func (p *Pipeline) Prepare(ctx context.Context, in Input) (*GenerationRequest, error) {
	tool, err := p.tools.GetToolDefinition(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if tool == nil || !tool.Published {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, in.Slug)
	}

	params, err := MergeParameters(tool.Fields, tool.DefaultParameters, in.Parameters)
	if err != nil {
		return nil, err
	}

	active, err := p.models.ListActiveModels(ctx, tool.AvailableModels)
	if err != nil {
		return nil, fmt.Errorf("list active models: %w", err)
	}

	modelID, err := SelectModel(tool, ActiveSet(active), in.Model)
	if err != nil {
		return nil, err
	}

	return BuildRequest(tool.PromptCategory, modelID, params), nil
}

// Run 执行完整流水线。校验与模型选择错误以 error 返回；
// Provider 的结果（成功或失败）总是放在 Result.Response 中。
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	req, err := p.Prepare(ctx, in)
	if err != nil {
		p.log.WithFields(logrus.Fields{"tool": in.Slug, "code": Code(err)}).
			Warnf("generation rejected: %v", err)
		return nil, err
	}

	start := time.Now()
	raw, attempts, callErr := p.call(ctx, req)
	resp := NormalizeResponse(raw, callErr)

	entry := p.log.WithFields(logrus.Fields{
		"tool":     in.Slug,
		"model":    req.ModelIdentifier(),
		"attempts": attempts,
		"latency":  time.Since(start),
	})
	if resp.Success {
		entry.WithField("names", len(resp.Names)).Info("generation succeeded")
	} else {
		entry.WithField("error", resp.Error).Warn("generation failed")
	}

	return &Result{Request: req, Response: resp, Attempts: attempts}, nil
}

// call 调用 Provider，每次尝试单独计时；调用方取消时立即放弃，不保留部分结果
func (p *Pipeline) call(ctx context.Context, req *GenerationRequest) (any, int, error) {
	var lastErr error
	attempts := 0
	for attempts <= p.opts.MaxRetries {
		attempts++
		raw, err := p.attempt(ctx, req)
		if err == nil {
			return raw, attempts, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		p.log.WithFields(logrus.Fields{"model": req.ModelIdentifier(), "attempt": attempts}).
			Warnf("provider call failed: %v", err)
	}
	return nil, attempts, lastErr
}

func (p *Pipeline) attempt(ctx context.Context, req *GenerationRequest) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	raw, err := p.provider.Generate(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out after %s: %w", p.opts.Timeout, err)
		}
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return raw, nil
}
