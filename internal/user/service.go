package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gameapi/internal/platform/crypto"
)

var validate = validator.New()

type Service struct {
	repo   Repository
	hasher PasswordHasher
	log    *zap.Logger
}

func NewService(repo Repository, hasher PasswordHasher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, hasher: hasher, log: log}
}

// Create registers a new user. Emails are unique; a second registration with
// the same address returns ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := validateInput(in); err != nil {
		return User{}, err
	}

	_, err := s.repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return User{}, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return User{}, fmt.Errorf("lookup user by email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	u := &User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}

	s.log.Info("user created", zap.String("user_id", u.ID))
	return *u, nil
}

// VerifyPassword reports whether plain matches a stored password hash.
func (s *Service) VerifyPassword(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return s.hasher.Verify(hash, plain)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func validateInput(in CreateInput) error {
	if validate.Var(in.Email, "required,email") != nil {
		return ErrInvalidEmail
	}
	if len([]rune(in.Username)) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	return crypto.ValidatePassword(in.Password)
}
