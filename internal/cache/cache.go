// Package cache 提供工具定义的 Redis 快照缓存
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/namegen/internal/generator"
)

const toolKeyPrefix = "namegen:tool:"

// ToolCache 工具定义缓存。redis 为 nil 时所有操作都是空操作。
// 缓存读写失败只记录日志，不影响主流程。
type ToolCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   logrus.FieldLogger
}

// NewToolCache 创建工具缓存
func NewToolCache(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *ToolCache {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ToolCache{redis: client, ttl: ttl, log: log}
}

// Enabled 是否启用
func (c *ToolCache) Enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

func toolKey(slug string) string {
	return toolKeyPrefix + slug
}

// Get 读取缓存
func (c *ToolCache) Get(ctx context.Context, slug string) (*generator.ToolDefinition, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.redis.Get(ctx, toolKey(slug)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithField("tool", slug).Warnf("tool cache get failed: %v", err)
		}
		return nil, false
	}

	var def generator.ToolDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		c.log.WithField("tool", slug).Warnf("tool cache entry corrupted: %v", err)
		return nil, false
	}
	return &def, true
}

// Set 写入缓存
func (c *ToolCache) Set(ctx context.Context, def *generator.ToolDefinition) {
	if !c.Enabled() || def == nil {
		return
	}
	data, err := json.Marshal(def)
	if err != nil {
		c.log.WithField("tool", def.Slug).Warnf("tool cache marshal failed: %v", err)
		return
	}
	if err := c.redis.Set(ctx, toolKey(def.Slug), data, c.ttl).Err(); err != nil {
		c.log.WithField("tool", def.Slug).Warnf("tool cache set failed: %v", err)
	}
}

// Invalidate 删除缓存
func (c *ToolCache) Invalidate(ctx context.Context, slug string) {
	if !c.Enabled() {
		return
	}
	if err := c.redis.Del(ctx, toolKey(slug)).Err(); err != nil {
		c.log.WithField("tool", slug).Warnf("tool cache invalidate failed: %v", err)
	}
}
