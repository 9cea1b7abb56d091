package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"vaultapi/internal/auth"
	"vaultapi/internal/model"
)

const (
	// UserIDLocalKey is where the verified user id is stored in context locals.
	UserIDLocalKey = "user_id"
	// UserTierLocalKey is where the verified tier claim is stored.
	UserTierLocalKey = "user_tier"
)

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth guards a route group with bearer token verification. Claims are
// re-verified on every request; nothing is cached past the signed expiry.
// Missing, malformed, invalid, and expired tokens all surface as a generic 401
// so callers learn nothing about which check failed.
func RequireAuth(verifier Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization required")
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization required")
		}

		c.Locals(UserIDLocalKey, claims.UserID)
		c.Locals(UserTierLocalKey, claims.Tier)

		return c.Next()
	}
}

// UserID returns the authenticated user id placed in locals by RequireAuth.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(UserIDLocalKey).(string)
	return uid
}

// UserTier returns the authenticated tier claim placed in locals by RequireAuth.
func UserTier(c *fiber.Ctx) model.Tier {
	tier, _ := c.Locals(UserTierLocalKey).(model.Tier)
	return tier
}
