package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/quartermaster-gg/quartermaster-backend/internal/catalog"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/config"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

// catalog-import seeds the towns, structures and items tables from the ETL
// CSVs. Run it once against a freshly migrated database.
func main() {
	logg := logger.New(logger.Options{ServiceName: "catalog-import"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "catalog-import",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	conn := dbClient.DB()
	loader := catalog.NewLoader(conn, catalog.NewRepository(conn), logg)

	ctx := logg.WithField(context.Background(), "dir", cfg.Catalog.Dir)
	if err := loader.LoadDir(ctx, cfg.Catalog); err != nil {
		logg.Error(ctx, "catalog import failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "catalog import complete")
}
