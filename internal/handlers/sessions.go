package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/labourlink/internal/middleware"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/session"
)

// Sessions issues and ends the session cookie.
type Sessions struct {
	Signer  *session.Signer
	Revoker session.Revoker
	Cookie  string
	Secure  bool
	Log     *zap.Logger
}

func (s *Sessions) Start(c *fiber.Ctx, u *models.User) error {
	token, err := s.Signer.Sign(u)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.Cookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: "Lax",
		MaxAge:   int(s.Signer.TTL().Seconds()),
	})
	return nil
}

// End revokes the current token until it would have expired and clears the cookie.
func (s *Sessions) End(c *fiber.Ctx) {
	if cur, ok := middleware.CurrentSession(c); ok && s.Revoker != nil {
		ttl := time.Until(cur.ExpiresAt())
		if err := s.Revoker.Revoke(c.UserContext(), cur.TokenID(), ttl); err != nil {
			s.Log.Warn("revoke session", zap.String("user_id", cur.UserID.String()), zap.Error(err))
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.Cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: "Lax",
	})
}

// Config returns the middleware settings that read back what Start wrote.
func (s *Sessions) Config() middleware.SessionConfig {
	return middleware.SessionConfig{
		Signer:  s.Signer,
		Revoker: s.Revoker,
		Cookie:  s.Cookie,
		Log:     s.Log,
	}
}
