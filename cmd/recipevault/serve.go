package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/pageza/recipe-vault/backend/config"
	"github.com/pageza/recipe-vault/backend/internal/api"
	"github.com/pageza/recipe-vault/backend/internal/database"
	"github.com/pageza/recipe-vault/backend/internal/metrics"
	"github.com/pageza/recipe-vault/backend/internal/middleware"
	"github.com/pageza/recipe-vault/backend/internal/router"
	"github.com/pageza/recipe-vault/backend/internal/server"
	"github.com/pageza/recipe-vault/backend/internal/service"
	"github.com/pageza/recipe-vault/backend/internal/storage"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), a.cfg, a.logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	conns, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := conns.Close(); err != nil {
			logger.Warn("failed to close connections", "error", err)
		}
	}()

	if cfg.Storage.Seed {
		written, err := storage.SeedDefaults(ctx, conns.Storage, false)
		if err != nil {
			return err
		}
		if len(written) > 0 {
			logger.Info("seeded storage", "keys", written)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	opts := []service.Option{
		service.WithDelay(service.RandomDelay{Min: cfg.Delay.Min, Max: cfg.Delay.Max}),
		service.WithMetrics(collector),
		service.WithLogger(logger),
	}

	limitCfg := middleware.RateLimitConfig{
		Window:    cfg.RateLimit.Window,
		Limit:     cfg.RateLimit.Limit,
		KeyPrefix: "recipevault:ratelimit:generate",
	}
	var limiter middleware.Limiter
	if conns.Redis != nil {
		limiter = middleware.NewRedisLimiter(conns.Redis, limitCfg)
	} else {
		local := middleware.NewLocalLimiter(limitCfg)
		defer local.Stop()
		limiter = local
	}

	handler := router.SetupRouter(router.Options{
		Logger: logger,
		Services: api.Services{
			Recipes:       service.NewRecipeService(conns.Storage, opts...),
			ShoppingLists: service.NewShoppingListService(conns.Storage, opts...),
		},
		Metrics:     collector,
		Gatherer:    reg,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Limiter:     limiter,
	})

	logger.Info("starting recipevault",
		"version", version,
		"env", cfg.Env,
		"backend", cfg.Storage.Backend,
		"addr", cfg.Server.Addr(),
	)
	return server.New(cfg.Server, handler, logger).Run(ctx)
}
