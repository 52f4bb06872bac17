package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tnved-api/internal/auditlog"
	"tnved-api/internal/config"
	"tnved-api/internal/github"
	apihttp "tnved-api/internal/http"
	"tnved-api/internal/llm"
	"tnved-api/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel, zap.NewStdLog(logger))

	var cache service.ResultCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, result cache disabled", zap.Error(err))
		} else {
			cache = service.NewRedisResultCache(redisClient, time.Duration(cfg.CacheTTLMin)*time.Minute)
		}
		cancel()
	}

	var store github.ContentsStore
	if cfg.LoggingEnabled() {
		store = github.NewClient(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubPath, cfg.GitHubBranch)
	} else {
		logger.Info("github audit log disabled: remote-store identifiers not set")
	}
	audit := auditlog.NewAppender(store, logger)

	detectSvc := service.NewDetectService(llmClient, cache, logger)
	detectHandler := apihttp.NewDetectHandler(logger, detectSvc, audit)
	router := apihttp.NewRouter(logger, detectHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
