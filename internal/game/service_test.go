package game

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and persists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		svc := NewService(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *Game) error {
			g.ID = "g-1"
			return nil
		})

		g, err := svc.Create(ctx, CreateInput{Title: "  Hades ", Description: strPtr("roguelike"), UserID: "u-1"})
		require.NoError(t, err)
		assert.Equal(t, "g-1", g.ID)
		assert.Equal(t, "Hades", g.Title)
		assert.Equal(t, "roguelike", *g.Description)
	})

	t.Run("nil description allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		g, err := NewService(repo, nil).Create(ctx, CreateInput{Title: "Celeste", UserID: "u-1"})
		require.NoError(t, err)
		assert.Nil(t, g.Description)
	})

	t.Run("empty title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		_, err := NewService(NewMockRepository(ctrl), nil).Create(ctx, CreateInput{Title: "   ", UserID: "u-1"})
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("empty user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		_, err := NewService(NewMockRepository(ctrl), nil).Create(ctx, CreateInput{Title: "Celeste"})
		assert.ErrorIs(t, err, ErrEmptyUserID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrUserNotFound)

		_, err := NewService(repo, nil).Create(ctx, CreateInput{Title: "Celeste", UserID: "ghost"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, nil)

	repo.EXPECT().ListByUser(gomock.Any(), "u-1").Return([]Game{{ID: "a"}, {ID: "b"}}, nil)
	games, err := svc.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, games, 2)

	_, err = svc.ListByUser(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, nil)

	repo.EXPECT().Delete(gomock.Any(), "g-1").Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), "g-1"))

	repo.EXPECT().Delete(gomock.Any(), "g-2").Return(ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "g-2"), ErrNotFound)
}
