package service

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/developer-portal/internal/domain"
	"github.com/spec-kit/developer-portal/internal/events"
	"github.com/spec-kit/developer-portal/internal/repository"
	apperrors "github.com/spec-kit/developer-portal/pkg/util"
)

// AppMetrics carries the dashboard numbers for one app. Downloads and
// active users are mock figures derived deterministically from the app
// id; there is no real analytics pipeline behind them.
type AppMetrics struct {
	AppID       string
	Name        string
	Downloads   int64
	ActiveUsers int64
}

// DashboardSummary aggregates a developer's dashboard landing data.
type DashboardSummary struct {
	TotalApps   int64
	Downloads   int64
	ActiveUsers int64
	Apps        []AppMetrics
}

// PortalOverview aggregates portal-wide counters for the superadmin
// area.
type PortalOverview struct {
	TotalUsers int64
	TotalApps  int64
}

// CreateAppParams is the create-app wizard submission.
type CreateAppParams struct {
	Name        string
	Category    string
	Description string
	IconURL     string
}

// AppService handles app submissions and dashboard aggregates.
type AppService struct {
	apps       repository.AppRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAppService builds the service.
func NewAppService(apps repository.AppRepository, users repository.UserRepository, dispatcher events.Dispatcher) *AppService {
	return &AppService{apps: apps, users: users, dispatcher: dispatcher}
}

// CreateApp persists a wizard submission for the owner. The rich-text
// description is stored verbatim.
func (s *AppService) CreateApp(ctx context.Context, ownerID string, params CreateAppParams) (*domain.App, error) {
	if params.Name == "" {
		return nil, apperrors.NewValidationError("app name required", nil)
	}
	if params.Category == "" {
		return nil, apperrors.NewValidationError("app category required", nil)
	}

	app := &domain.App{
		OwnerID:     ownerID,
		Name:        params.Name,
		Category:    params.Category,
		Description: params.Description,
		IconURL:     params.IconURL,
		Status:      domain.AppStatusSubmitted,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAppCreated,
			SubjectID: ownerID,
			Timestamp: time.Now(),
			Payload:   events.AppCreatedPayload{AppID: app.ID, Name: app.Name, Category: app.Category},
		})
	}

	return app, nil
}

// ListApps returns the owner's submissions, newest first.
func (s *AppService) ListApps(ctx context.Context, ownerID string) ([]*domain.App, error) {
	return s.apps.ListByOwner(ctx, ownerID)
}

// Summary builds the dashboard landing numbers for the owner.
func (s *AppService) Summary(ctx context.Context, ownerID string) (*DashboardSummary, error) {
	apps, err := s.apps.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{TotalApps: int64(len(apps))}
	for _, app := range apps {
		metrics := mockMetricsFor(app)
		summary.Downloads += metrics.Downloads
		summary.ActiveUsers += metrics.ActiveUsers
		summary.Apps = append(summary.Apps, metrics)
	}
	return summary, nil
}

// Overview builds the superadmin counters.
func (s *AppService) Overview(ctx context.Context) (*PortalOverview, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	appCount, err := s.apps.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &PortalOverview{TotalUsers: userCount, TotalApps: appCount}, nil
}

// mockMetricsFor derives stable pseudo-figures from the app id so the
// dashboard shows consistent numbers across requests.
func mockMetricsFor(app *domain.App) AppMetrics {
	h := fnv.New64a()
	_, _ = h.Write([]byte(app.ID))
	seed := h.Sum64()
	return AppMetrics{
		AppID:       app.ID,
		Name:        app.Name,
		Downloads:   int64(seed % 100000),
		ActiveUsers: int64(seed % 10000),
	}
}
