// Package generation 提供名称生成服务
package generation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/namegen/internal/generator"
)

// Service 生成服务
type Service struct {
	pipeline *generator.Pipeline
	log      logrus.FieldLogger
}

// NewService 创建生成服务
func NewService(pipeline *generator.Pipeline, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{pipeline: pipeline, log: log}
}

// GenerateRequest 生成请求
type GenerateRequest struct {
	Parameters map[string]any `json:"parameters"`
	Model      string         `json:"model"`
}

// Generate 对指定工具执行一次生成
func (s *Service) Generate(ctx context.Context, slug string, req *GenerateRequest) (*generator.Result, error) {
	return s.pipeline.Run(ctx, generator.Input{
		Slug:       slug,
		Parameters: req.Parameters,
		Model:      req.Model,
	})
}

// Preview 只做校验与组装，不调用 Provider
func (s *Service) Preview(ctx context.Context, slug string, req *GenerateRequest) (*generator.GenerationRequest, error) {
	genReq, err := s.pipeline.Prepare(ctx, generator.Input{
		Slug:       slug,
		Parameters: req.Parameters,
		Model:      req.Model,
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"tool": slug, "model": genReq.ModelIdentifier()}).Debug("generation preview")
	return genReq, nil
}
