// Package main is the entry point for the campaign-engine HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/handler"
	"github.com/bulkwave/campaign-engine/internal/middleware"
	"github.com/bulkwave/campaign-engine/internal/ratelimit"
	"github.com/bulkwave/campaign-engine/internal/repository"
	"github.com/bulkwave/campaign-engine/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Redis is optional: without it the engine runs on in-memory rate
	// limiting and skips the provider-id cache.
	redisClient := connectRedis(cfg, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, redisClient, logger)

	h := handler.NewHandler(svc, logger)
	router := setupRouter(h)

	var apiStore ratelimit.Store
	if redisClient != nil {
		apiStore = ratelimit.NewRedisStore(redisClient)
	} else {
		apiStore = ratelimit.NewMemoryStore()
	}
	apiLimiter := ratelimit.New(apiStore, time.Duration(cfg.Middleware.RateWindowSeconds)*time.Second)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Middleware.AllowedOrigins

	middlewareConfig := &middleware.Config{
		Logger:         logger,
		CORS:           corsConfig,
		RateLimiter:    apiLimiter,
		RateLimit:      cfg.Middleware.RateLimit,
		RequestTimeout: 30 * time.Second,
	}
	if !cfg.Middleware.EnableCORS {
		middlewareConfig.CORS = nil
	}

	finalHandler := middleware.Chain(middlewareConfig)(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      finalHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := svc.Scheduler.Start(); err != nil {
		logger.Error("Failed to start schedulers on startup", zap.Error(err))
	} else {
		logger.Info("Campaign poll and retry drain started")
	}

	go func() {
		logger.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if svc.Scheduler.IsRunning() {
		if err := svc.Scheduler.Stop(); err != nil {
			logger.Error("Failed to stop schedulers", zap.Error(err))
		}
	}

	// Let in-flight background dispatches land their counters before the
	// process exits.
	svc.WaitBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func connectRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if cfg.Redis.Host == "" {
		logger.Warn("Redis not configured, using in-memory rate limiting")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, using in-memory rate limiting", zap.Error(err))
		_ = client.Close()
		return nil
	}

	return client
}
