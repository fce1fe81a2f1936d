package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NivBraz/student-aggregator/internal/app"
	"github.com/NivBraz/student-aggregator/internal/config"
	"github.com/NivBraz/student-aggregator/internal/logger"
)

func main() {
	fmt.Println("Student Aggregator")
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logr.Sync()
	logr.Info("Configuration loaded", "baseURL", cfg.API.BaseURL, "dryRun", cfg.Output.DryRun)

	// Create context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logr)
	if err != nil {
		logr.Fatal("Failed to initialize application", "error", err)
	}

	if _, err := application.Run(ctx); err != nil {
		logr.Error("Run failed", "error", err)
		stop()
		logr.Sync()
		os.Exit(1)
	}
	logr.Info("Application completed")
}
