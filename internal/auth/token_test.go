package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/developer-portal/internal/domain"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return tm
}

func validClaim(role domain.Role) domain.IdentityClaim {
	return domain.IdentityClaim{
		SubjectID: "42",
		Name:      "Bob",
		Email:     "bob@example.com",
		Role:      role,
	}
}

func TestNewTokenManagerEmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := newTestManager(t)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleSuperadmin} {
		claim := validClaim(role)
		token, exp, err := tm.Issue(claim)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		got, ok := tm.Verify(token)
		require.True(t, ok, "role %s", role)
		assert.Equal(t, claim, got)
	}
}

func TestIssueRejectsInvalidClaims(t *testing.T) {
	tm := newTestManager(t)

	tests := []struct {
		name  string
		claim domain.IdentityClaim
	}{
		{"missing subject", domain.IdentityClaim{Email: "a@b.c", Role: domain.RoleUser}},
		{"missing email", domain.IdentityClaim{SubjectID: "1", Role: domain.RoleUser}},
		{"unknown role", domain.IdentityClaim{SubjectID: "1", Email: "a@b.c", Role: "root"}},
		{"empty role", domain.IdentityClaim{SubjectID: "1", Email: "a@b.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tm.Issue(tt.claim)
			require.Error(t, err)
		})
	}
}

func TestVerifyExpiration(t *testing.T) {
	tm := newTestManager(t)
	base := time.Now()
	tm.now = func() time.Time { return base }

	token, _, err := tm.Issue(validClaim(domain.RoleUser))
	require.NoError(t, err)

	tm.now = func() time.Time { return base.Add(3599 * time.Second) }
	got, ok := tm.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "42", got.SubjectID)

	tm.now = func() time.Time { return base.Add(3601 * time.Second) }
	_, ok = tm.Verify(token)
	assert.False(t, ok)
}

func TestVerifyTamperedToken(t *testing.T) {
	tm := newTestManager(t)

	token, _, err := tm.Issue(validClaim(domain.RoleAdmin))
	require.NoError(t, err)

	// flip one byte at a spread of positions across header, payload and
	// signature
	for _, i := range []int{0, len(token) / 4, len(token) / 2, 3 * len(token) / 4, len(token) - 1} {
		mutated := []byte(token)
		mutated[i] ^= 0x01
		if string(mutated) == token {
			continue
		}
		_, ok := tm.Verify(string(mutated))
		assert.False(t, ok, "byte %d", i)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tm := newTestManager(t)
	other, err := NewTokenManager("other-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Issue(validClaim(domain.RoleUser))
	require.NoError(t, err)

	_, ok := tm.Verify(token)
	assert.False(t, ok)
}

func TestVerifyMalformedInput(t *testing.T) {
	tm := newTestManager(t)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, ok := tm.Verify(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestVerifyRejectsUnknownRoleClaim(t *testing.T) {
	tm := newTestManager(t)

	// token signed with the right secret but carrying a role outside the
	// enumeration
	claims := &Claims{
		Name:  "Eve",
		Email: "eve@example.com",
		Role:  "root",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "13",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok := tm.Verify(signed)
	assert.False(t, ok)
}

func TestVerifyRejectsUnexpectedSigningMethod(t *testing.T) {
	tm := newTestManager(t)

	claims := &Claims{
		Role: domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "13",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := tm.Verify(unsigned)
	assert.False(t, ok)
}
