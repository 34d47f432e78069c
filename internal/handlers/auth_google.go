package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/metrics"
	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
	"github.com/Windi-Fikriyansyah/labourlink/internal/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleOAuthHandler struct {
	DB             *gorm.DB
	Sessions       *Sessions
	Log            *zap.Logger
	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string

	// fetchUser is swapped in tests
	fetchUser func(ctx context.Context, code string) (googleUserInfo, error)
}

func NewGoogleOAuthHandler(db *gorm.DB, sessions *Sessions, log *zap.Logger, clientID, secret, redirect string) *GoogleOAuthHandler {
	h := &GoogleOAuthHandler{
		DB:             db,
		Sessions:       sessions,
		Log:            log,
		GoogleClientID: clientID,
		GoogleSecret:   secret,
		GoogleRedirect: redirect,
	}
	h.fetchUser = h.exchange
	return h
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) setTempCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Sessions.Secure,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)
	h.setTempCookie(c, "oauth_state", st, 10*60)
	return c.Redirect(h.oauthCfg().AuthCodeURL(st), http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (h *GoogleOAuthHandler) exchange(ctx context.Context, code string) (googleUserInfo, error) {
	var gu googleUserInfo
	tok, err := h.oauthCfg().Exchange(ctx, code)
	if err != nil {
		return gu, fmt.Errorf("exchange code: %w", err)
	}

	resp, err := h.oauthCfg().Client(ctx, tok).Get(googleUserInfoURL)
	if err != nil {
		return gu, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gu, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return gu, fmt.Errorf("decode userinfo: %w", err)
	}
	return gu, nil
}

// GoogleCallback signs the Google account in, creating a customer account on first use.
func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return fail(c, fiber.StatusBadRequest, "Missing code/state")
	}
	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return fail(c, fiber.StatusBadRequest, "Invalid state")
	}
	h.setTempCookie(c, "oauth_state", "", -1)

	gu, err := h.fetchUser(c.UserContext(), code)
	if err != nil {
		h.Log.Warn("google sign-in failed", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Google sign-in failed")
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	if email == "" || !gu.VerifiedEmail {
		return fail(c, fiber.StatusBadRequest, "Google account has no verified email")
	}

	db := h.DB.WithContext(c.UserContext())

	var u models.User
	err = db.Where("email = ?", email).First(&u).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// the account still needs a password hash; nobody knows this one
		hashed, err := utils.HashPassword(randomState(24))
		if err != nil {
			return err
		}
		name := strings.TrimSpace(gu.Name)
		if name == "" {
			name = email
		}
		u = models.User{
			Name:         name,
			Email:        email,
			Password:     hashed,
			UserType:     models.RoleCustomer,
			ProfileImage: gu.Picture,
			IsActive:     true,
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		metrics.ObserveRegistration(string(u.UserType))
		h.Log.Info("user registered via google", zap.String("user_id", u.ID.String()))
	}

	if !u.IsActive {
		return c.Redirect("/login")
	}

	if err := h.Sessions.Start(c, &u); err != nil {
		return err
	}
	return c.Redirect(u.ProfilePath(), http.StatusTemporaryRedirect)
}
