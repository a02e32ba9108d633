package domain

import "time"

// UserStatus represents lifecycle states for a portal account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for portal accounts (developers and operators).
type User struct {
	ID            string
	Name          string
	Email         string
	PhoneNumber   string
	PasswordHash  string
	Role          Role
	AvatarURL     string
	PhoneVerified bool
	Status        UserStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
