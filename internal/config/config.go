package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	AI         AIConfig
	Generation GenerationConfig
	Auth       AuthConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
}

// RedisConfig Redis配置，Host 为空时不启用缓存
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AIConfig AI Provider 配置（OpenAI 兼容接口）
type AIConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	Temperature  float32
	Timeout      int
	// Templates 额外的提示词模板，键为 ai_prompt_category
	Templates map[string]string
}

// GenerationConfig 生成流水线配置
type GenerationConfig struct {
	TimeoutSeconds  int
	MaxRetries      int
	CacheTTLSeconds int
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret string
}

// Load 加载配置
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 环境变量
	v.SetEnvPrefix("NAMEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.Generation.TimeoutSeconds <= 0 {
		return fmt.Errorf("generation.timeoutSeconds must be > 0")
	}
	if c.Generation.MaxRetries < 0 || c.Generation.MaxRetries > 1 {
		return fmt.Errorf("generation.maxRetries must be 0 or 1, got %d", c.Generation.MaxRetries)
	}
	return nil
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr 获取 Redis 地址
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled 是否配置了 Redis
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "namegen")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", true)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "namegen")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.maxLifetime", 300)

	// Redis
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// AI
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.baseUrl", "https://api.openai.com/v1")
	v.SetDefault("ai.defaultModel", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.9)
	v.SetDefault("ai.timeout", 60)

	// Generation
	v.SetDefault("generation.timeoutSeconds", 30)
	v.SetDefault("generation.maxRetries", 1)
	v.SetDefault("generation.cacheTTLSeconds", 60)

	// Auth
	v.SetDefault("auth.jwtSecret", "")
}
