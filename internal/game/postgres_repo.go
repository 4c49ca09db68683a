package game

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, g *Game) error {
	const query = `
	INSERT INTO games (id, title, description, user_id)
	VALUES (gen_random_uuid(), $1, $2, $3)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, g.Title, g.Description, g.UserID).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	switch pgCode(err) {
	case foreignKeyViolation, invalidTextRepresentation:
		return ErrUserNotFound
	}
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Game, error) {
	const query = `
	SELECT id, title, description, user_id, created_at, updated_at
	FROM games WHERE id = $1 LIMIT 1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var g Game
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&g.ID, &g.Title, &g.Description, &g.UserID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == invalidTextRepresentation {
			return Game{}, ErrNotFound
		}
		return Game{}, err
	}
	return g, nil
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]Game, error) {
	const query = `
	SELECT id, title, description, user_id, created_at, updated_at
	FROM games WHERE user_id = $1
	ORDER BY created_at, id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, userID)
	if err != nil {
		if pgCode(err) == invalidTextRepresentation {
			return []Game{}, nil
		}
		return nil, err
	}

	games, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Game, error) {
		var g Game
		err := row.Scan(&g.ID, &g.Title, &g.Description, &g.UserID, &g.CreatedAt, &g.UpdatedAt)
		return g, err
	})
	if err != nil {
		if pgCode(err) == invalidTextRepresentation {
			return []Game{}, nil
		}
		return nil, err
	}
	return games, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM games WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		if pgCode(err) == invalidTextRepresentation {
			return ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
