package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platefull/backend/config"
	"github.com/platefull/backend/internal/api"
	"github.com/platefull/backend/internal/database"
	"github.com/platefull/backend/internal/logging"
	"github.com/platefull/backend/internal/middleware"
	"github.com/platefull/backend/internal/server"
	"github.com/platefull/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.LogLevel); err != nil {
		slog.Error("failed to set up logging", "err", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	deps := api.Deps{}

	// The rate limiter is best-effort; a missing Redis only disables it.
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		slog.Warn("redis unavailable, recipe write rate limiting disabled", "err", err)
	} else {
		deps.WriteLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
	}

	// Image uploads need S3 credentials; without them the endpoint is not
	// registered.
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		slog.Warn("s3 unavailable, recipe image uploads disabled", "err", err)
	} else {
		deps.ImageService = service.NewImageService(s3cfg)
	}

	srv := server.New(cfg, db, deps)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server", "host", cfg.ServerHost, "port", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("received signal", "signal", sig.String())
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
