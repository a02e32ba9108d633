package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/developer-portal/internal/config"
	"github.com/spec-kit/developer-portal/internal/domain"
	"github.com/spec-kit/developer-portal/internal/events"
	"github.com/spec-kit/developer-portal/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "service-test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Seed(repository.DefaultSeedUsers(), bcrypt.MinCost))

	svc, err := NewAuthService(testConfig(), AuthDependencies{
		Credentials: store,
		UserRepo:    store,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	require.NoError(t, err)
	return svc, store
}

func TestAuthServiceRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	_, err := NewAuthService(cfg, AuthDependencies{})
	require.Error(t, err)
}

func TestLoginIssuesRoleBearingToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, token, _, err := svc.Login(context.Background(), "bob@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	claim, ok := svc.TokenManager().Verify(token)
	require.True(t, ok)
	assert.Equal(t, user.ID, claim.SubjectID)
	assert.Equal(t, domain.RoleAdmin, claim.Role)
	assert.Equal(t, "bob@example.com", claim.Email)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, _, wrongPassword := svc.Login(ctx, "bob@example.com", "nope")
	require.Error(t, wrongPassword)

	_, _, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "admin123")
	require.Error(t, unknownEmail)

	// unknown identifier and wrong credential must be
	// indistinguishable
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRegisterCreatesUserRoleAccount(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "Dana", "dana@example.com", "+12025550104", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.PhoneVerified)

	claim, ok := svc.TokenManager().Verify(token)
	require.True(t, ok)
	assert.Equal(t, domain.RoleUser, claim.Role)

	stored, err := store.GetByEmail(ctx, "dana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, _, err := svc.Register(context.Background(), "Imposter", "bob@example.com", "", "pw")
	require.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	alice, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, alice.ID, "Alice Cooper", "/avatars/alice.png")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "/avatars/alice.png", updated.AvatarURL)

	// role and email untouched
	assert.Equal(t, domain.RoleUser, updated.Role)
	assert.Equal(t, "alice@example.com", updated.Email)
}
