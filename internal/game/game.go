package game

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("game not found")
	ErrEmptyTitle   = errors.New("title must not be empty")
	ErrEmptyUserID  = errors.New("user id must not be empty")
	ErrUserNotFound = errors.New("owning user not found")
)

// Game is a title registered by a user. Description is optional.
type Game struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateInput struct {
	Title       string
	Description *string
	UserID      string
}
