package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/config"
	"github.com/spec-kit/developer-portal/internal/domain"
	"github.com/spec-kit/developer-portal/internal/events"
	"github.com/spec-kit/developer-portal/internal/repository"
	apperrors "github.com/spec-kit/developer-portal/pkg/util"
)

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	credentials repository.CredentialStore
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
	bcryptCost  int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	Credentials repository.CredentialStore
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service. The token manager constructor
// enforces the presence of the signing secret.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		return nil, err
	}
	return &AuthService{
		credentials: deps.Credentials,
		users:       deps.UserRepo,
		tokenMgr:    tokenMgr,
		dispatcher:  deps.Dispatcher,
		bcryptCost:  cfg.Auth.BcryptCost,
	}, nil
}

// Login authenticates by email and password and issues a session token.
// Unknown emails and wrong passwords surface the same generic failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.credentials.FindByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(domain.ClaimForUser(user))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Register creates a new developer account with the default role and
// issues a session token.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			SubjectID: user.ID,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Email: user.Email, Role: user.Role},
		})
	}

	token, exp, err := s.tokenMgr.Issue(domain.ClaimForUser(user))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// UpdateProfile changes display fields; identity and role are untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, avatarURL string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts for the admin area.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Logout is a no-op for the stateless token approach; the transport
// clears the session cookie.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for the gate and
// session middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
