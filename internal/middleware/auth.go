package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier verifies a bearer token and returns the authenticated subject.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// AdminAuth guards admin routes with a bearer token. The authenticated
// subject is stored in ctx locals under "admin_user" for audit attribution.
func AdminAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		subject, err := verifier.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals("admin_user", subject)
		return c.Next()
	}
}

// AdminUser returns the authenticated admin subject from ctx locals, or ""
// outside an AdminAuth-guarded route.
func AdminUser(c *fiber.Ctx) string {
	if user, ok := c.Locals("admin_user").(string); ok {
		return user
	}
	return ""
}
