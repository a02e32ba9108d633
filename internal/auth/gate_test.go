package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/developer-portal/internal/domain"
)

func newGateApp(t *testing.T) (*fiber.App, *TokenManager) {
	t.Helper()
	tm, err := NewTokenManager("gate-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(NewGate(tm, DefaultPolicy()).Handle)

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/dashboard/summary", ok)
	app.Get("/admin/users", ok)
	app.Get("/superadmin/overview", ok)
	app.Get("/administrator/profile", ok)
	app.Get("/docs", ok)
	return app, tm
}

func tokenFor(t *testing.T, tm *TokenManager, role domain.Role) string {
	t.Helper()
	token, _, err := tm.Issue(domain.IdentityClaim{
		SubjectID: "7",
		Name:      "Test",
		Email:     "test@example.com",
		Role:      role,
	})
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func TestGateMissingToken(t *testing.T) {
	app, _ := newGateApp(t)

	for _, path := range []string{"/dashboard/summary", "/admin/users", "/superadmin/overview"} {
		resp := doRequest(t, app, path, "")
		assertRedirect(t, resp, LoginPath)
	}
}

func TestGateInvalidToken(t *testing.T) {
	app, _ := newGateApp(t)

	resp := doRequest(t, app, "/dashboard/summary", "not-a-token")
	assertRedirect(t, resp, LoginPath)
}

func TestGateRoleMatrix(t *testing.T) {
	app, tm := newGateApp(t)

	tests := []struct {
		role     domain.Role
		path     string
		status   int
		location string
	}{
		{domain.RoleUser, "/dashboard/summary", http.StatusOK, ""},
		{domain.RoleUser, "/admin/users", http.StatusFound, "/dashboard"},
		{domain.RoleUser, "/superadmin/overview", http.StatusFound, "/dashboard"},
		{domain.RoleAdmin, "/admin/users", http.StatusOK, ""},
		// the dashboard demands exactly role user; an admin is bounced
		// to login, not to an authenticated area
		{domain.RoleAdmin, "/dashboard/summary", http.StatusFound, LoginPath},
		{domain.RoleAdmin, "/superadmin/overview", http.StatusFound, "/dashboard"},
		{domain.RoleSuperadmin, "/superadmin/overview", http.StatusOK, ""},
		{domain.RoleSuperadmin, "/admin/users", http.StatusFound, "/dashboard"},
		{domain.RoleSuperadmin, "/dashboard/summary", http.StatusFound, LoginPath},
	}
	for _, tt := range tests {
		resp := doRequest(t, app, tt.path, tokenFor(t, tm, tt.role))
		assert.Equal(t, tt.status, resp.StatusCode, "%s on %s", tt.role, tt.path)
		if tt.location != "" {
			assert.Equal(t, tt.location, resp.Header.Get("Location"), "%s on %s", tt.role, tt.path)
		}
	}
}

func TestGateUnprotectedPathsPassThrough(t *testing.T) {
	app, _ := newGateApp(t)

	// no token needed outside the policy table
	resp := doRequest(t, app, "/docs", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// prefix match is segment-aware: /administrator is not /admin
	resp = doRequest(t, app, "/administrator/profile", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// garbage token on an unprotected path is irrelevant
	resp = doRequest(t, app, "/docs", "garbage")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateClaimStoredInLocals(t *testing.T) {
	tm, err := NewTokenManager("gate-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(NewGate(tm, DefaultPolicy()).Handle)
	app.Get("/dashboard/whoami", func(c *fiber.Ctx) error {
		claim, ok := ClaimFromContext(c)
		require.True(t, ok)
		return c.SendString(claim.Email)
	})

	resp := doRequest(t, app, "/dashboard/whoami", tokenFor(t, tm, domain.RoleUser))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateLongestPrefixWins(t *testing.T) {
	tm, err := NewTokenManager("gate-secret", time.Hour)
	require.NoError(t, err)

	rules := []PolicyRule{
		{Prefix: "/admin", Role: domain.RoleAdmin, Fallback: "/dashboard"},
		{Prefix: "/admin/audit", Role: domain.RoleSuperadmin, Fallback: "/dashboard"},
	}
	app := fiber.New()
	app.Use(NewGate(tm, rules).Handle)
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/admin/users", ok)
	app.Get("/admin/audit/log", ok)

	adminToken := tokenFor(t, tm, domain.RoleAdmin)
	superToken := tokenFor(t, tm, domain.RoleSuperadmin)

	resp := doRequest(t, app, "/admin/users", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// /admin/audit is more specific than /admin even though it is
	// declared later
	resp = doRequest(t, app, "/admin/audit/log", adminToken)
	assertRedirect(t, resp, "/dashboard")

	resp = doRequest(t, app, "/admin/audit/log", superToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
