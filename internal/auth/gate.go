package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/developer-portal/internal/domain"
)

const claimKey = "auth_claim"

// LoginPath is where unauthenticated requests to protected prefixes are
// sent.
const LoginPath = "/login"

// PolicyRule maps a path prefix to the exact role it demands and the
// location an authenticated-but-wrong-role request is sent to.
type PolicyRule struct {
	Prefix   string
	Role     domain.Role
	Fallback string
}

// DefaultPolicy returns the portal's protected-area table. The
// asymmetry is deliberate and preserved from observed behavior: the
// dashboard admits only plain users and bounces everyone else to login,
// while admin and superadmin mismatches fall back to the dashboard
// because the caller is authenticated, just not authorized there.
func DefaultPolicy() []PolicyRule {
	return []PolicyRule{
		{Prefix: "/admin", Role: domain.RoleAdmin, Fallback: "/dashboard"},
		{Prefix: "/superadmin", Role: domain.RoleSuperadmin, Fallback: "/dashboard"},
		{Prefix: "/dashboard", Role: domain.RoleUser, Fallback: LoginPath},
	}
}

// Gate is the per-request admission control for protected path
// prefixes. It holds no state between requests; the rule table is fixed
// at construction.
type Gate struct {
	tokens *TokenManager
	rules  []PolicyRule
}

// NewGate builds the gate over a policy table.
func NewGate(tokens *TokenManager, rules []PolicyRule) *Gate {
	return &Gate{tokens: tokens, rules: rules}
}

// Handle admits, redirects or passes through the request. Paths outside
// every rule prefix are untouched. Missing or invalid tokens redirect
// to login; a valid token with the wrong role redirects to the rule's
// fallback. Nothing here returns an error to the client.
func (g *Gate) Handle(c *fiber.Ctx) error {
	rule := g.resolve(c.Path())
	if rule == nil {
		return c.Next()
	}

	token := c.Cookies(SessionCookieName)
	if token == "" {
		return c.Redirect(LoginPath)
	}

	claim, ok := g.tokens.Verify(token)
	if !ok {
		return c.Redirect(LoginPath)
	}

	if claim.Role != rule.Role {
		return c.Redirect(rule.Fallback)
	}

	c.Locals(claimKey, claim)
	return c.Next()
}

// resolve picks the most specific matching rule; ties break by
// declaration order.
func (g *Gate) resolve(path string) *PolicyRule {
	var best *PolicyRule
	for i := range g.rules {
		rule := &g.rules[i]
		if !prefixMatch(path, rule.Prefix) {
			continue
		}
		if best == nil || len(rule.Prefix) > len(best.Prefix) {
			best = rule
		}
	}
	return best
}

// prefixMatch matches whole path segments, so /admin guards
// /admin and /admin/users but not /administrator.
func prefixMatch(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// ClaimFromContext retrieves the claim stored by the gate.
func ClaimFromContext(c *fiber.Ctx) (domain.IdentityClaim, bool) {
	val := c.Locals(claimKey)
	if val == nil {
		return domain.IdentityClaim{}, false
	}
	claim, ok := val.(domain.IdentityClaim)
	return claim, ok
}
