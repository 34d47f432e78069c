// Package session carries the signed-in account between requests.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/labourlink/internal/models"
)

var ErrNoSession = errors.New("no session")

// Session is what handlers know about the caller.
type Session struct {
	UserID uuid.UUID
	Role   models.Role
	Name   string

	tokenID   string
	expiresAt time.Time
}

func (s Session) IsLabour() bool   { return s.Role == models.RoleLabour }
func (s Session) IsCustomer() bool { return s.Role == models.RoleCustomer }

func (s Session) TokenID() string      { return s.tokenID }
func (s Session) ExpiresAt() time.Time { return s.expiresAt }

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Signer issues and checks session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) TTL() time.Duration { return s.ttl }

func (s *Signer) Sign(u *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID.String(),
		Role:   string(u.UserType),
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a token and returns its session. Any defect yields ErrNoSession.
func (s *Signer) Parse(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoSession
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Session{}, ErrNoSession
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Session{}, ErrNoSession
	}
	role := models.Role(claims.Role)
	if !role.Valid() {
		return Session{}, ErrNoSession
	}

	out := Session{UserID: uid, Role: role, Name: claims.Name, tokenID: claims.ID}
	if claims.ExpiresAt != nil {
		out.expiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
