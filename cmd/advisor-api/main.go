// Package main 开发顾问服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dev-advisor-api/internal/application/advisor"
	"dev-advisor-api/internal/config"
	"dev-advisor-api/internal/infrastructure/llm"
	"dev-advisor-api/internal/infrastructure/persistence/redis"
	"dev-advisor-api/internal/interfaces/http/handler"
	"dev-advisor-api/internal/interfaces/http/router"
	"dev-advisor-api/pkg/logger"
	"dev-advisor-api/pkg/tracer"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting advisor-api",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化追踪
	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 初始化 Redis
	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to connect redis", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("failed to close redis", "error", err)
		}
	}()

	// 存储层
	historyStore := redis.NewHistoryStore(redisClient, cfg.History.MaxEntries)
	kvStore := redis.NewKVStore(redisClient)
	limiter := redis.NewRateLimiter(redisClient)

	// AI 网关与分析编排
	catalog := llm.DefaultCatalog()
	gateway := llm.NewGateway(catalog, cfg.AI.Timeout)
	source := llm.NewChainSource(
		llm.NewStaticSource(cfg.AI, catalog),
		llm.NewEnvSource(catalog, os.LookupEnv),
	)
	orchestrator := advisor.NewOrchestrator(source, gateway)

	// 处理器与路由
	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(redisClient),
		Analysis: handler.NewAnalysisHandler(orchestrator, historyStore, kvStore),
		History:  handler.NewHistoryHandler(historyStore),
		Draft:    handler.NewDraftHandler(kvStore, cfg.History.DraftTTL),
		AI:       handler.NewAIHandler(catalog, gateway),
	}
	r := router.New(cfg, handlers, limiter)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	// 启动服务器
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
