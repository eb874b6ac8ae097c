package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"docsrouter/internal/cache"
	"docsrouter/internal/common"
	"docsrouter/internal/export"
	"docsrouter/internal/preview"
	"docsrouter/internal/repository"
	"docsrouter/internal/review"
	"docsrouter/internal/server"
	"docsrouter/internal/stage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.HealthCheck(ctx, pool, cfg.Database, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database health OK")

	st, err := stage.NewMinioStage(cfg.Stage)
	if err != nil {
		logger.Error("failed to connect to stage storage", "error", err)
		os.Exit(1)
	}

	readCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.TTL, logger)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	recordRepo := repository.NewRecordRepository(pool, logger)
	svc := review.NewService(
		repository.NewDocTypeRepository(pool, logger),
		repository.NewPromptRepository(pool, logger),
		recordRepo,
		repository.NewProcRunner(pool, logger),
		st,
		readCache,
		&cache.Revision{},
		preview.NewRenderer(preview.NewPageStore(), logger),
		cfg.Preview,
		logger,
	)
	exporter := export.NewService(recordRepo, logger)

	srv := server.New(svc, exporter, cfg.Server, logger)
	httpServer := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
