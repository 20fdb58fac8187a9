package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tendant/portfolio-content/internal/api"
	"github.com/tendant/portfolio-content/pkg/portfolio/config"
)

func main() {
	// Load .env if present; real environment takes precedence in production.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	svc, err := cfg.BuildService(ctx, logger)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	gate, err := cfg.BuildGate()
	if err != nil {
		slog.Error("Failed to build access gate", "error", err)
		os.Exit(1)
	}

	server := api.NewServer(svc, gate, cfg.Environment)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: server.Routes(),
	}

	go func() {
		slog.Info("Portfolio content server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"storage", cfg.StorageURL)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
