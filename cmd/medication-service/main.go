package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Naveenp7/meditrack-ai-sub001/internal/medication"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize Medication Service
	service := medication.New(cfg, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	// Start service in a goroutine
	go func() {
		logger.Infof("Starting Medication Service on port %s", port)
		if err := service.Start(":" + port); err != nil {
			logger.Fatalf("Failed to start Medication Service: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down Medication Service...")
	if err := service.Stop(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
	logger.Info("Medication Service stopped")
}
