package dto

// SendOTPRequest payload for sending or resending a code.
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// VerifyOTPRequest payload for code verification.
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

// SendOTPResponse reports the issued challenge.
type SendOTPResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ChallengeID string `json:"otpId,omitempty"`
	ExpiresIn   int    `json:"expiresIn,omitempty"`
}

// OTPStatusResponse reports whether a challenge is pending.
type OTPStatusResponse struct {
	IsValid   bool `json:"isValid"`
	ExpiresIn int  `json:"expiresIn"`
}
