package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/developer-portal/internal/domain"
)

// AppRepository defines persistence access for submitted apps.
type AppRepository interface {
	Create(ctx context.Context, app *domain.App) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.App, error)
	Count(ctx context.Context) (int64, error)
}

type appRepository struct {
	pool *pgxpool.Pool
}

// NewAppRepository returns a Postgres-backed implementation.
func NewAppRepository(pool *pgxpool.Pool) AppRepository {
	return &appRepository{pool: pool}
}

func (r *appRepository) Create(ctx context.Context, app *domain.App) error {
	const query = `
        INSERT INTO apps (owner_id, name, category, description, icon_url, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		app.OwnerID,
		app.Name,
		app.Category,
		app.Description,
		app.IconURL,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *appRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.App, error) {
	const query = `
        SELECT id, owner_id, name, category, description, icon_url, status, created_at, updated_at
        FROM apps WHERE owner_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.App
	for rows.Next() {
		var app domain.App
		if err := rows.Scan(
			&app.ID,
			&app.OwnerID,
			&app.Name,
			&app.Category,
			&app.Description,
			&app.IconURL,
			&app.Status,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

func (r *appRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM apps`).Scan(&count)
	return count, err
}
