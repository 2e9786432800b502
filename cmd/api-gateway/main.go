package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/internal/gateway"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/monitoring"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize distributed tracing when a collector is configured
	var tracing *monitoring.TracingManager
	if cfg.Monitoring.JaegerEndpoint != "" {
		tracing, err = monitoring.NewTracingManager(&monitoring.TracingConfig{
			ServiceName:    "api-gateway",
			ServiceVersion: "1.0.0",
			JaegerEndpoint: cfg.Monitoring.JaegerEndpoint,
			Environment:    os.Getenv("ENVIRONMENT"),
			SamplingRate:   cfg.Monitoring.SamplingRate,
		})
		if err != nil {
			logger.Errorf("Failed to initialize tracing: %v", err)
		}
	}

	// Create the gateway service. Backends come from cfg.Services.
	service := gateway.NewService(cfg, logger)
	service.StartRateLimiterCleanup(time.Hour)

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting API Gateway")
		if err := service.Start(""); err != nil {
			logger.Fatalf("Failed to start API Gateway: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down API Gateway...")
	if err := service.Stop(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}

	if tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx); err != nil {
			logger.Errorf("Error shutting down tracing: %v", err)
		}
	}

	logger.Info("API Gateway stopped")
}
