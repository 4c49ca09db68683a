package main

import (
	"context"
	"flag"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"gameapi/internal/config"
	"gameapi/internal/platform/logger"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg := config.LoadMigrations()
	log := logger.New(logger.ForEnvironment("", "info"))
	defer func() { _ = log.Sync() }()

	dir := cfg.Dir

	if *command == "create" {
		if *name == "" {
			log.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		log.Info("migration created", zap.String("name", *name), zap.String("dir", dir))
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("failed to set dialect", zap.Error(err))
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("migrations applied", zap.String("dir", dir))
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			log.Fatal("failed to roll back migration", zap.Error(err))
		}
		log.Info("migration rolled back", zap.String("dir", dir))
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			log.Fatal("failed to check migration status", zap.Error(err))
		}
	default:
		log.Fatal("unknown command, use: up, down, status, create", zap.String("command", *command))
	}
}
