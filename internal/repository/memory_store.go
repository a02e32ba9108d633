package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/domain"
)

// MemoryStore is an in-memory user and app store used when no Postgres
// DSN is configured and by tests. It implements UserRepository,
// AppRepository and CredentialStore. Lookup misses return pgx.ErrNoRows
// so callers behave identically against either backend.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	apps  map[string]*domain.App
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*domain.User),
		apps:  make(map[string]*domain.App),
	}
}

// SeedUser holds a plaintext seed entry hashed during seeding.
type SeedUser struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
}

// DefaultSeedUsers mirrors the development account list.
func DefaultSeedUsers() []SeedUser {
	return []SeedUser{
		{Name: "Alice", Email: "alice@example.com", Phone: "+12025550101", Password: "1234", Role: domain.RoleUser},
		{Name: "Bob", Email: "bob@example.com", Phone: "+12025550102", Password: "admin123", Role: domain.RoleAdmin},
		{Name: "Charlie", Email: "charlie@example.com", Phone: "+12025550103", Password: "super123", Role: domain.RoleSuperadmin},
	}
}

// Seed inserts the given accounts, hashing their passwords.
func (m *MemoryStore) Seed(seeds []SeedUser, bcryptCost int) error {
	for _, seed := range seeds {
		hash, err := auth.HashPassword(seed.Password, bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Name:         seed.Name,
			Email:        seed.Email,
			PhoneNumber:  seed.Phone,
			PasswordHash: hash,
			Role:         seed.Role,
			Status:       domain.UserStatusActive,
		}
		if err := m.Create(context.Background(), user); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *MemoryStore) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MemoryStore) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.PhoneNumber == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MemoryStore) List(_ context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

// FindByCredentials implements CredentialStore over the seeded users.
func (m *MemoryStore) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := m.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateApp stores a submitted app.
func (m *MemoryStore) CreateApp(_ context.Context, app *domain.App) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	clone := *app
	m.apps[app.ID] = &clone
	return nil
}

// ListAppsByOwner returns the owner's apps, newest first.
func (m *MemoryStore) ListAppsByOwner(_ context.Context, ownerID string) ([]*domain.App, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var apps []*domain.App
	for _, app := range m.apps {
		if app.OwnerID == ownerID {
			clone := *app
			apps = append(apps, &clone)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

// CountApps returns the total number of apps.
func (m *MemoryStore) CountApps(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.apps)), nil
}

// memoryAppRepository adapts MemoryStore to AppRepository.
type memoryAppRepository struct {
	store *MemoryStore
}

// AppRepo exposes the store's app side under the AppRepository interface.
func (m *MemoryStore) AppRepo() AppRepository {
	return &memoryAppRepository{store: m}
}

func (r *memoryAppRepository) Create(ctx context.Context, app *domain.App) error {
	return r.store.CreateApp(ctx, app)
}

func (r *memoryAppRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.App, error) {
	return r.store.ListAppsByOwner(ctx, ownerID)
}

func (r *memoryAppRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountApps(ctx)
}
