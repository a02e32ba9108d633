package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/domain"
)

// ErrInvalidCredentials is returned for both unknown identifiers and
// wrong passwords; callers must not be able to tell which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialStore abstracts the identity lookup performed at login.
// The gate and token logic never touch it directly.
type CredentialStore interface {
	FindByCredentials(ctx context.Context, email, password string) (*domain.User, error)
}

type pgCredentialStore struct {
	users UserRepository
}

// NewCredentialStore wraps a user repository with bcrypt verification.
func NewCredentialStore(users UserRepository) CredentialStore {
	return &pgCredentialStore{users: users}
}

func (s *pgCredentialStore) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
