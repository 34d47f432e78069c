package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/labourlink/internal/session"
)

const sessionKey = "session"

type SessionConfig struct {
	Signer  *session.Signer
	Revoker session.Revoker
	Cookie  string
	Log     *zap.Logger
}

// LoadSession attaches the caller's session when the cookie holds a live token.
// Requests without one carry on anonymously.
func LoadSession(cfg SessionConfig) fiber.Handler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(cfg.Cookie)
		if tokenStr == "" {
			return c.Next()
		}

		s, err := cfg.Signer.Parse(tokenStr)
		if err != nil {
			return c.Next()
		}

		if cfg.Revoker != nil {
			revoked, err := cfg.Revoker.IsRevoked(c.UserContext(), s.TokenID())
			if err != nil {
				log.Warn("session revocation check failed", zap.Error(err))
				return c.Next()
			}
			if revoked {
				return c.Next()
			}
		}

		c.Locals(sessionKey, s)
		return c.Next()
	}
}

// CurrentSession returns the session LoadSession attached, if any.
func CurrentSession(c *fiber.Ctx) (session.Session, bool) {
	s, ok := c.Locals(sessionKey).(session.Session)
	return s, ok
}

func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentSession(c); !ok {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}
