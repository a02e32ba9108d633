package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/developer-portal/internal/domain"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	require.NoError(t, store.Seed(DefaultSeedUsers(), bcrypt.MinCost))
	return store
}

func TestFindByCredentials(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	user, err := store.FindByCredentials(ctx, "bob@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	_, err = store.FindByCredentials(ctx, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.FindByCredentials(ctx, "ghost@example.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMemoryStoreLookups(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	byEmail, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	byPhone, err := store.GetByPhone(ctx, byEmail.PhoneNumber)
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, byPhone.ID)

	byID, err := store.GetByID(ctx, byEmail.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMemoryStoreUpdateIsolation(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	user, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	// mutating a returned copy must not leak into the store
	user.Name = "Mallory"
	again, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)

	user.Name = "Alice A."
	require.NoError(t, store.Update(ctx, user))
	updated, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.Name)
}

func TestMemoryStoreApps(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.AppRepo()

	owner, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	app := &domain.App{
		OwnerID:  owner.ID,
		Name:     "Weather Mini",
		Category: "utilities",
		Status:   domain.AppStatusSubmitted,
	}
	require.NoError(t, repo.Create(ctx, app))
	assert.NotEmpty(t, app.ID)

	apps, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	other, err := repo.ListByOwner(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryOTPStoreExpiry(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	challenge := &domain.OTPChallenge{ID: "c1", PhoneNumber: "+12025550101", Code: "123456"}
	require.NoError(t, store.Put(ctx, challenge, 5*time.Minute))

	got, err := store.Get(ctx, "+12025550101")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.Code)

	ttl, err := store.TTL(ctx, "+12025550101")
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 0.0)

	base := time.Now()
	store.Now = func() time.Time { return base.Add(6 * time.Minute) }

	_, err = store.Get(ctx, "+12025550101")
	assert.ErrorIs(t, err, ErrNoChallenge)

	_, err = store.TTL(ctx, "+12025550101")
	assert.ErrorIs(t, err, ErrNoChallenge)
}
