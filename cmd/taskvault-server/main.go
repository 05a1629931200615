// Package main is the entry point for the TaskVault API server.
// TaskVault is a multi-tenant to-do backend with API key authentication.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/cache/memory"
	"github.com/taskvault/taskvault/internal/cache/redis"
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/handler"
	"github.com/taskvault/taskvault/internal/metrics"
	"github.com/taskvault/taskvault/internal/pkg/logging"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/repository/factory"
	"github.com/taskvault/taskvault/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting TaskVault server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database and repositories.
	result, err := factory.New(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer result.Database.Close()

	// Auth cache: Redis when enabled, in-process otherwise.
	var cache repository.Cache
	if cfg.Redis.Enabled {
		redisCache, err := redis.NewCache(ctx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		cache = redisCache
	} else {
		cache = memory.NewCache()
	}
	defer cache.Close()

	// Services.
	userService := service.NewUserService(result.Repos.User, logger)
	keyService := service.NewAPIKeyService(result.Repos.User, result.Repos.APIKey, cache, cfg.APIKeys, logger)
	todoService := service.NewTodoService(result.Repos.Todo, logger)

	// HTTP surface.
	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, logger),
		APIKeyHandler:  handler.NewAPIKeyHandler(keyService, logger),
		TodoHandler:    handler.NewTodoHandler(todoService, logger),
		HealthHandler:  handler.NewHealthHandler(result.Database, logger),
		KeyMiddleware:  auth.Middleware(result.Repos.APIKey, cache, logger),
		MetricsEnabled: cfg.Metrics.Enabled,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			logger.Info().Str("addr", metricsServer.Addr).Str("path", cfg.Metrics.Path).Msg("metrics server listening")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown failed")
		}
	}

	logger.Info().Msg("server stopped")
	return nil
}
