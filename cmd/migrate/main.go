package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/pdv-demo/internal/config"
	"github.com/nikolayk812/pdv-demo/internal/logger"
	"github.com/nikolayk812/pdv-demo/internal/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "pdv-migrate"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	if cfg.DB.DSN == "" {
		logg.Warn(ctx, "PDV_DB_DSN is empty, nothing to migrate")
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		logg.Error(ctx, "failed to open database", err)
		os.Exit(1)
	}
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := migrate.Up(ctx, sqlDB, logg); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}

	version, err := migrate.Version(ctx, sqlDB)
	if err != nil {
		logg.Error(ctx, "failed to read schema version", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "version", version), "migrations applied")
}
