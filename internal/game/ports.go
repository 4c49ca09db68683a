package game

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=game

type Repository interface {
	Create(ctx context.Context, g *Game) error
	GetByID(ctx context.Context, id string) (Game, error)
	ListByUser(ctx context.Context, userID string) ([]Game, error)
	Delete(ctx context.Context, id string) error
}
