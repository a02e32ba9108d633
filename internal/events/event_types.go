package events

import (
	"time"

	"github.com/spec-kit/developer-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventPhoneVerified  EventType = "phone_verified"
	EventAppCreated     EventType = "app_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// PhoneVerifiedPayload payload.
type PhoneVerifiedPayload struct {
	PhoneNumber string `json:"phone_number"`
}

// AppCreatedPayload payload.
type AppCreatedPayload struct {
	AppID    string `json:"app_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
