package domain

import "time"

// AppStatus tracks review states of a submitted app.
type AppStatus string

const (
	AppStatusDraft     AppStatus = "DRAFT"
	AppStatusSubmitted AppStatus = "SUBMITTED"
	AppStatusPublished AppStatus = "PUBLISHED"
)

// App models an application submitted through the create-app wizard.
// Description holds the rich-text body as an opaque string; the portal
// backend does not interpret editor markup.
type App struct {
	ID          string
	OwnerID     string
	Name        string
	Category    string
	Description string
	IconURL     string
	Status      AppStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
