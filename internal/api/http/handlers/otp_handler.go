package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/developer-portal/internal/api/dto"
	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/config"
	"github.com/spec-kit/developer-portal/internal/service"
)

// OTPHandler exposes phone verification endpoints.
type OTPHandler struct {
	otp    *service.OTPService
	appCfg config.AppConfig
}

// NewOTPHandler constructs the handler.
func NewOTPHandler(otpService *service.OTPService, appCfg config.AppConfig) *OTPHandler {
	return &OTPHandler{otp: otpService, appCfg: appCfg}
}

// Send handles POST /api/otp/send.
func (h *OTPHandler) Send(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" {
		return fiber.NewError(http.StatusBadRequest, "phoneNumber required")
	}

	info, err := h.otp.Send(c.Context(), req.PhoneNumber)
	if err != nil {
		return err
	}

	return c.JSON(dto.SendOTPResponse{
		Success:     true,
		Message:     "code sent",
		ChallengeID: info.ChallengeID,
		ExpiresIn:   info.ExpiresIn,
	})
}

// Resend handles POST /api/otp/resend.
func (h *OTPHandler) Resend(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" {
		return fiber.NewError(http.StatusBadRequest, "phoneNumber required")
	}

	info, err := h.otp.Resend(c.Context(), req.PhoneNumber)
	if err != nil {
		return err
	}

	return c.JSON(dto.SendOTPResponse{
		Success:     true,
		Message:     "code resent",
		ChallengeID: info.ChallengeID,
		ExpiresIn:   info.ExpiresIn,
	})
}

// Verify handles POST /api/otp/verify. A successful verification also
// starts a session for the matching account.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "phoneNumber and code required")
	}

	user, token, exp, err := h.otp.Verify(c.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, h.appCfg.IsProduction())

	return c.JSON(fiber.Map{
		"success": true,
		"message": "phone verified",
		"data": fiber.Map{
			"user": userPayload(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Status handles GET /api/otp/status.
func (h *OTPHandler) Status(c *fiber.Ctx) error {
	phone := c.Query("phoneNumber")
	if phone == "" {
		return fiber.NewError(http.StatusBadRequest, "phoneNumber required")
	}

	valid, expiresIn, err := h.otp.Status(c.Context(), phone)
	if err != nil {
		return err
	}

	return c.JSON(dto.OTPStatusResponse{IsValid: valid, ExpiresIn: expiresIn})
}
