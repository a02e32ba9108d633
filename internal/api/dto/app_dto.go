package dto

import "time"

// CreateAppRequest is the create-app wizard submission payload. The
// description carries the rich-text body as an opaque string.
type CreateAppRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

// AppResponse is the public view of a submission.
type AppResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	IconURL   string    `json:"icon_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
