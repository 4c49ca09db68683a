package game

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Game, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Game{}, ErrEmptyTitle
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return Game{}, ErrEmptyUserID
	}

	g := &Game{
		Title:       title,
		Description: in.Description,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return Game{}, err
	}

	s.log.Info("game created", zap.String("game_id", g.ID), zap.String("user_id", g.UserID))
	return *g, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Game, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser returns the games owned by userID, oldest first. An unknown
// user simply owns nothing.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Game, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("game deleted", zap.String("game_id", id))
	return nil
}
