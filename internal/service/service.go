package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/namegen/internal/cache"
	"github.com/ashwinyue/namegen/internal/config"
	"github.com/ashwinyue/namegen/internal/generator"
	"github.com/ashwinyue/namegen/internal/provider"
	"github.com/ashwinyue/namegen/internal/repository"
	"github.com/ashwinyue/namegen/internal/service/aimodel"
	"github.com/ashwinyue/namegen/internal/service/generation"
	"github.com/ashwinyue/namegen/internal/service/savedname"
	"github.com/ashwinyue/namegen/internal/service/tool"
)

// Services 服务集合
type Services struct {
	Tool       *tool.Service
	Model      *aimodel.Service
	SavedName  *savedname.Service
	Generation *generation.Service

	Config *config.Config
}

// NewServices 创建所有服务，使用配置中的 OpenAI 兼容接口作为 ChatModel
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client, log logrus.FieldLogger) (*Services, error) {
	chatModel, err := provider.NewOpenAIChatModel(context.Background(), cfg.AI, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServicesWithChatModel(repo, cfg, redisClient, chatModel, log), nil
}

// NewServicesWithChatModel 使用给定的 ChatModel 创建所有服务
func NewServicesWithChatModel(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client, chatModel model.BaseChatModel, log logrus.FieldLogger) *Services {
	if log == nil {
		log = logrus.StandardLogger()
	}

	toolCache := cache.NewToolCache(redisClient, time.Duration(cfg.Generation.CacheTTLSeconds)*time.Second, log)
	toolSvc := tool.NewService(repo.Tool, toolCache)
	modelSvc := aimodel.NewService(repo.Model)

	chatProvider := provider.NewChatProvider(chatModel, provider.NewTemplates(cfg.AI.Templates), log)
	if cfg.AI.Temperature > 0 {
		chatProvider.WithTemperature(cfg.AI.Temperature)
	}

	pipeline := generator.NewPipeline(toolSvc, modelSvc, chatProvider, generator.Options{
		Timeout:    time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.Generation.MaxRetries,
	}, log)

	log.WithFields(logrus.Fields{
		"cache":   toolCache.Enabled(),
		"timeout": cfg.Generation.TimeoutSeconds,
		"retries": cfg.Generation.MaxRetries,
	}).Info("services initialized")

	return &Services{
		Tool:       toolSvc,
		Model:      modelSvc,
		SavedName:  savedname.NewService(repo.SavedName),
		Generation: generation.NewService(pipeline, log),
		Config:     cfg,
	}
}
