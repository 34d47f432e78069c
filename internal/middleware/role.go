package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
)

// RequireRole sends anyone without a session of one of the allowed roles to the login page.
func RequireRole(allowed ...models.Role) fiber.Handler {
	allowedSet := map[models.Role]bool{}
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		s, ok := CurrentSession(c)
		if !ok || !allowedSet[s.Role] {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}
