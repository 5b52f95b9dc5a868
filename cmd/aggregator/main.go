package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cryptonews/internal/api"
	"cryptonews/internal/config"
	"cryptonews/internal/extract"
	"cryptonews/internal/monitoring"
	"cryptonews/internal/storage"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Initialize Storage Layer
	pgStore, err := storage.NewPostgresStore(cfg.PostgresURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pgStore.Close()
	redisStore := storage.NewRedisStore(cfg.RedisAddr, time.Duration(cfg.SeenTTLHours)*time.Hour)

	// Initialize Monitoring
	metrics := monitoring.NewMetrics()

	// Initialize Extraction Engine
	factory := extract.NewFactory(cfg.BrowserOptions(), cfg.ExtractWorkers, redisStore, metrics, logger)

	// Initialize API Server
	checks := map[string]api.HealthCheck{
		"postgres": pgStore.Ping,
		"redis":    redisStore.Ping,
	}
	server := api.NewServer(cfg, factory, pgStore, pgStore, checks, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
