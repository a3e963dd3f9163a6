package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/auth"
	"github.com/amirsoft21/bementor/internal/models"
)

// identityKey is where Protect stores the resolved caller in request locals.
const identityKey = "identity"

// Protect resolves the Authorization header to a caller identity or fails
// closed with 401. A missing header, a malformed header, and an
// undecodable or expired token all get the same classification. The read
// path never writes to the store.
func Protect(a auth.Authenticator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthenticated(c)
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthenticated(c)
		}

		ident, err := a.Authenticate(c.Context(), parts[1])
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			return unauthenticated(c)
		}

		c.Locals(identityKey, ident)
		return c.Next()
	}
}

// RequireRoles restricts an operation to callers whose role is in the
// allowed set. It must run after Protect: it has no authentication ability
// of its own, and a missing identity is a wiring bug, not a client error.
func RequireRoles(logger *zap.Logger, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := c.Locals(identityKey).(*auth.Identity)
		if !ok {
			logger.Error("role gate invoked without an authenticated identity",
				zap.String("path", c.Path()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Internal server error",
			})
		}
		for _, r := range roles {
			if ident.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Role " + string(ident.Role) + " is not allowed to access this resource",
		})
	}
}

// IdentityFromCtx returns the identity attached by Protect.
func IdentityFromCtx(c *fiber.Ctx) (*auth.Identity, bool) {
	ident, ok := c.Locals(identityKey).(*auth.Identity)
	return ident, ok
}

// SetIdentity exists for handler tests that bypass Protect.
func SetIdentity(c *fiber.Ctx, ident *auth.Identity) {
	c.Locals(identityKey, ident)
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Not authorized to access this resource",
	})
}
