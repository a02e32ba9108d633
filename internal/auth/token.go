package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/developer-portal/internal/domain"
	apperrors "github.com/spec-kit/developer-portal/pkg/util"
)

// TokenManager issues and verifies signed session tokens carrying an
// identity claim. The secret is process-wide, loaded once at startup
// and never mutated, so Issue and Verify are safe to call concurrently.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager. An empty secret is refused: the
// process must not start without an authentication guarantee.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, apperrors.NewConfigurationError("token signing secret is empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Claims describes the JWT payload.
type Claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the claim. Subject id, email and a
// recognized role are required.
func (tm *TokenManager) Issue(claim domain.IdentityClaim) (string, time.Time, error) {
	if claim.SubjectID == "" {
		return "", time.Time{}, apperrors.NewInvalidClaim("subject id required")
	}
	if claim.Email == "" {
		return "", time.Time{}, apperrors.NewInvalidClaim("email required")
	}
	if !claim.Role.Valid() {
		return "", time.Time{}, apperrors.NewInvalidClaim("unknown role")
	}

	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Name:  claim.Name,
		Email: claim.Email,
		Role:  claim.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.SubjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature integrity and expiration and returns the
// embedded claim. Malformed, tampered, expired and unknown-role tokens
// all yield the same false result; callers get no hint which check
// failed.
func (tm *TokenManager) Verify(tokenStr string) (domain.IdentityClaim, bool) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return domain.IdentityClaim{}, false
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.IdentityClaim{}, false
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return domain.IdentityClaim{}, false
	}

	return domain.IdentityClaim{
		SubjectID: claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      claims.Role,
	}, true
}
