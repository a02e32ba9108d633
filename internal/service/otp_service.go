package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/config"
	"github.com/spec-kit/developer-portal/internal/domain"
	"github.com/spec-kit/developer-portal/internal/events"
	"github.com/spec-kit/developer-portal/internal/repository"
	apperrors "github.com/spec-kit/developer-portal/pkg/util"
)

// E.164 with a leading plus.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// OTPChallengeInfo is returned after sending a code.
type OTPChallengeInfo struct {
	ChallengeID string
	ExpiresIn   int
}

// OTPService issues and verifies one-time phone verification codes.
// Codes live in the challenge store with a TTL and are consumed on the
// first successful verification.
type OTPService struct {
	store      repository.OTPStore
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	codeLength int
	codeTTL    time.Duration
}

// NewOTPService builds the service.
func NewOTPService(cfg config.OTPConfig, store repository.OTPStore, users repository.UserRepository, tokens *auth.TokenManager, dispatcher events.Dispatcher, logger *zap.Logger) *OTPService {
	length := cfg.CodeLength
	if length <= 0 {
		length = 6
	}
	return &OTPService{
		store:      store,
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger,
		codeLength: length,
		codeTTL:    cfg.CodeTTL(),
	}
}

// Send generates a fresh code for the phone number, replacing any
// pending challenge. Delivery is an SMS stub: the code is logged only.
func (s *OTPService) Send(ctx context.Context, phone string) (*OTPChallengeInfo, error) {
	if !phonePattern.MatchString(phone) {
		return nil, apperrors.NewValidationError("invalid phone number", map[string]any{"phoneNumber": phone})
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, err
	}

	challenge := &domain.OTPChallenge{
		ID:          uuid.NewString(),
		PhoneNumber: phone,
		Code:        code,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Put(ctx, challenge, s.codeTTL); err != nil {
		return nil, err
	}

	s.logger.Info("otp code issued (sms stub)",
		zap.String("phone", phone),
		zap.String("challenge_id", challenge.ID),
	)

	return &OTPChallengeInfo{
		ChallengeID: challenge.ID,
		ExpiresIn:   int(s.codeTTL.Seconds()),
	}, nil
}

// Resend issues a fresh code with a full TTL.
func (s *OTPService) Resend(ctx context.Context, phone string) (*OTPChallengeInfo, error) {
	return s.Send(ctx, phone)
}

// Verify consumes the pending challenge when the code matches. If an
// account exists for the phone number it is marked verified and a
// session token is issued for it.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (*domain.User, string, time.Time, error) {
	challenge, err := s.store.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNoChallenge) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid or expired code")
		}
		return nil, "", time.Time{}, err
	}
	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid or expired code")
	}
	if err := s.store.Delete(ctx, phone); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("account", map[string]any{"phoneNumber": phone})
		}
		return nil, "", time.Time{}, err
	}

	if !user.PhoneVerified {
		user.PhoneVerified = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPhoneVerified,
			SubjectID: user.ID,
			Timestamp: time.Now(),
			Payload:   events.PhoneVerifiedPayload{PhoneNumber: phone},
		})
	}

	token, exp, err := s.tokens.Issue(domain.ClaimForUser(user))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Status reports whether a challenge is pending and its remaining TTL
// in seconds.
func (s *OTPService) Status(ctx context.Context, phone string) (bool, int, error) {
	ttl, err := s.store.TTL(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNoChallenge) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, int(ttl.Seconds()), nil
}

func (s *OTPService) generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < s.codeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", s.codeLength, n), nil
}
