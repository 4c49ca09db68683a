package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gameapi/internal/config"
	"gameapi/internal/game"
	"gameapi/internal/platform/crypto"
	"gameapi/internal/platform/logger"
	"gameapi/internal/user"
)

var demoGames = []struct {
	title       string
	description string
}{
	{"Hades", "Roguelike dungeon crawler through the underworld."},
	{"Celeste", "Precision platformer about climbing a mountain."},
	{"Outer Wilds", ""},
	{"Disco Elysium", "Detective role-playing game."},
}

func main() {
	email := flag.String("email", "demo@example.com", "Email of the demo user")
	password := flag.String("password", "demo-password", "Password of the demo user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "error"}).Fatal("invalid configuration", zap.Error(err))
	}
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	users := user.NewService(user.NewPostgresRepo(pool, cfg.DBQueryTimeout), crypto.NewPasswordHasher(), log)
	games := game.NewService(game.NewPostgresRepo(pool, cfg.DBQueryTimeout), log)

	if err := seed(ctx, users, games, *email, *password); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("seed complete", zap.String("email", *email), zap.Int("games", len(demoGames)))
}

func seed(ctx context.Context, users *user.Service, games *game.Service, email, password string) error {
	u, err := users.Create(ctx, user.CreateInput{Email: email, Username: "demo", Password: password})
	if errors.Is(err, user.ErrAlreadyExists) {
		return fmt.Errorf("demo user %s already seeded: %w", email, err)
	}
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	for _, g := range demoGames {
		in := game.CreateInput{Title: g.title, UserID: u.ID}
		if g.description != "" {
			desc := g.description
			in.Description = &desc
		}
		if _, err := games.Create(ctx, in); err != nil {
			return fmt.Errorf("create game %q: %w", g.title, err)
		}
	}
	return nil
}
