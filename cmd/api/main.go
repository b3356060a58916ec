package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quartermaster-gg/quartermaster-backend/api/routes"
	"github.com/quartermaster-gg/quartermaster-backend/internal/catalog"
	"github.com/quartermaster-gg/quartermaster-backend/internal/guilds"
	"github.com/quartermaster-gg/quartermaster-backend/internal/inventory"
	"github.com/quartermaster-gg/quartermaster-backend/internal/presets"
	"github.com/quartermaster-gg/quartermaster-backend/internal/quotas"
	"github.com/quartermaster-gg/quartermaster-backend/internal/requirements"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/config"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/metrics"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/migrate"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	commandMetrics := metrics.NewCommandMetrics(registry)

	conn := dbClient.DB()
	catalogRepo := catalog.NewRepository(conn)
	resolver := catalog.NewResolver(catalogRepo)

	guildSvc := guilds.NewService(guilds.NewRepository(conn), logg)
	stockRepo := stockpiles.NewRepository(conn)
	stockSvc := stockpiles.NewService(conn, stockRepo, catalogRepo, logg)
	invRepo := inventory.NewRepository(conn)
	invSvc := inventory.NewService(conn, invRepo, catalogRepo, logg)
	quotaRepo := quotas.NewRepository(conn)
	quotaSvc := quotas.NewService(conn, quotaRepo, catalogRepo, resolver, logg)
	presetSvc := presets.NewService(presets.NewRepository(conn), quotaSvc, logg)
	reqSvc := requirements.NewService(stockRepo, quotaRepo, invRepo, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(
		cfg,
		logg,
		dbClient,
		redisClient,
		redisClient,
		commandMetrics,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		routes.Services{
			Guilds:       guildSvc,
			Stockpiles:   stockSvc,
			Inventory:    invSvc,
			Quotas:       quotaSvc,
			Presets:      presetSvc,
			Requirements: reqSvc,
		},
	)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
