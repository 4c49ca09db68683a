package user

import (
	"errors"
	"time"
)

const MinUsernameLength = 3

var (
	ErrNotFound         = errors.New("user not found")
	ErrAlreadyExists    = errors.New("user already exists")
	ErrInvalidEmail     = errors.New("email must be a valid email address")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
)

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateInput struct {
	Email    string
	Username string
	Password string
}
