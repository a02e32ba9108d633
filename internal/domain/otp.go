package domain

import "time"

// OTPChallenge is a pending one-time code sent to a phone number.
// Challenges expire via the store's TTL; a successful verification
// consumes the challenge.
type OTPChallenge struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"created_at"`
}
