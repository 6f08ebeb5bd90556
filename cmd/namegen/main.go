package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/namegen/internal/config"
	"github.com/ashwinyue/namegen/internal/database"
	"github.com/ashwinyue/namegen/internal/handler"
	"github.com/ashwinyue/namegen/internal/repository"
	"github.com/ashwinyue/namegen/internal/router"
	"github.com/ashwinyue/namegen/internal/service"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// 加载配置，未指定且默认文件不存在时只使用默认值与环境变量
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			configPath = defaultConfigPath
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	// 初始化数据库
	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	log.WithField("dbname", cfg.Database.DBName).Info("Database connected")

	// 初始化 Redis，未配置时不启用工具缓存
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	// 初始化各层
	repos := repository.NewRepositories(db.DB)
	services, err := service.NewServices(repos, cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to init services: %v", err)
	}
	handlers := handler.NewHandlers(services, db.Ping)

	// 初始化路由
	r := router.SetupRouter(handlers, cfg.Auth.JWTSecret, log)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		log.Infof("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
