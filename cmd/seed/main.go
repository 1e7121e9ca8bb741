package main

import (
	"context"
	"flag"
	"log"
	"time"

	"skill-community/internal/config"
	"skill-community/internal/database/migration"
	dbpostgres "skill-community/internal/database/postgres"
	"skill-community/internal/database/seeder"
	"skill-community/internal/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations without seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatalf("DATABASE_URL is not configured")
	}

	lg := logger.New(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := (migration.Runner{}).Run(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	lg.Info("Seed", "migrations applied", nil)

	if *migrateOnly {
		return
	}

	seeders := seeder.Defaults()
	if err := (seeder.Runner{Seeders: seeders}).Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	lg.Info("Seed", "seeders applied", map[string]any{"count": len(seeders)})
}
