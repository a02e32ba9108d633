package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/config"
	"github.com/spec-kit/developer-portal/internal/events"
	"github.com/spec-kit/developer-portal/internal/repository"
)

const testPhone = "+12025550101"

func newTestOTPService(t *testing.T) (*OTPService, *repository.MemoryOTPStore, *repository.MemoryStore) {
	t.Helper()
	users := repository.NewMemoryStore()
	require.NoError(t, users.Seed(repository.DefaultSeedUsers(), bcrypt.MinCost))

	otpStore := repository.NewMemoryOTPStore()
	tokens, err := auth.NewTokenManager("otp-test-secret", time.Hour)
	require.NoError(t, err)

	svc := NewOTPService(
		config.OTPConfig{CodeLength: 6, TTLMinutes: 5},
		otpStore,
		users,
		tokens,
		events.NewInMemoryDispatcher(),
		zap.NewNop(),
	)
	return svc, otpStore, users
}

func pendingCode(t *testing.T, store *repository.MemoryOTPStore, phone string) string {
	t.Helper()
	challenge, err := store.Get(context.Background(), phone)
	require.NoError(t, err)
	return challenge.Code
}

func TestOTPSendAndStatus(t *testing.T) {
	svc, _, _ := newTestOTPService(t)
	ctx := context.Background()

	info, err := svc.Send(ctx, testPhone)
	require.NoError(t, err)
	assert.NotEmpty(t, info.ChallengeID)
	assert.Equal(t, 300, info.ExpiresIn)

	valid, expiresIn, err := svc.Status(ctx, testPhone)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Greater(t, expiresIn, 0)
	assert.LessOrEqual(t, expiresIn, 300)
}

func TestOTPSendRejectsBadPhone(t *testing.T) {
	svc, _, _ := newTestOTPService(t)

	for _, phone := range []string{"", "12025550101", "+0123", "not-a-phone"} {
		_, err := svc.Send(context.Background(), phone)
		require.Error(t, err, "phone %q", phone)
	}
}

func TestOTPVerifyMarksPhoneAndIssuesToken(t *testing.T) {
	svc, store, users := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, testPhone)
	require.NoError(t, err)

	user, token, _, err := svc.Verify(ctx, testPhone, pendingCode(t, store, testPhone))
	require.NoError(t, err)
	assert.True(t, user.PhoneVerified)
	assert.NotEmpty(t, token)

	stored, err := users.GetByPhone(ctx, testPhone)
	require.NoError(t, err)
	assert.True(t, stored.PhoneVerified)
}

func TestOTPVerifyConsumesChallenge(t *testing.T) {
	svc, store, _ := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, testPhone)
	require.NoError(t, err)
	code := pendingCode(t, store, testPhone)

	_, _, _, err = svc.Verify(ctx, testPhone, code)
	require.NoError(t, err)

	// second use of the same code fails
	_, _, _, err = svc.Verify(ctx, testPhone, code)
	require.Error(t, err)
}

func TestOTPVerifyWrongCode(t *testing.T) {
	svc, store, _ := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, testPhone)
	require.NoError(t, err)

	wrong := "000000"
	if pendingCode(t, store, testPhone) == wrong {
		wrong = "000001"
	}

	_, _, _, err = svc.Verify(ctx, testPhone, wrong)
	require.Error(t, err)

	// a failed attempt does not consume the challenge
	valid, _, err := svc.Status(ctx, testPhone)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestOTPExpiry(t *testing.T) {
	svc, store, _ := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, testPhone)
	require.NoError(t, err)
	code := pendingCode(t, store, testPhone)

	base := time.Now()
	store.Now = func() time.Time { return base.Add(6 * time.Minute) }

	valid, _, err := svc.Status(ctx, testPhone)
	require.NoError(t, err)
	assert.False(t, valid)

	_, _, _, err = svc.Verify(ctx, testPhone, code)
	require.Error(t, err)
}

func TestOTPResendRefreshesChallenge(t *testing.T) {
	svc, store, _ := newTestOTPService(t)
	ctx := context.Background()

	first, err := svc.Send(ctx, testPhone)
	require.NoError(t, err)

	second, err := svc.Resend(ctx, testPhone)
	require.NoError(t, err)
	assert.NotEqual(t, first.ChallengeID, second.ChallengeID)

	// the fresh code is the one that verifies
	_, _, _, err = svc.Verify(ctx, testPhone, pendingCode(t, store, testPhone))
	require.NoError(t, err)
}
