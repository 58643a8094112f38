package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"gp1-tickets/internal/models"
)

// AuthService gates the administrative surface behind a single password.
// A successful login yields a short-lived bearer token for the mutating
// event routes. Login attempts, successful or not, are reported to the
// notification sink the same way the rest of the admin flow is.
type AuthService struct {
	passwordHash string
	jwtSecret    []byte
	tokenTTL     time.Duration
	notifier     Notifier
	logger       zerolog.Logger
}

// NewAuthService builds the service from a bcrypt password hash and a JWT
// signing secret. An empty hash disables authentication entirely (open
// development mode).
func NewAuthService(passwordHash, jwtSecret string, tokenTTL time.Duration, notifier Notifier, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		notifier:     notifier,
		logger:       logger,
	}
}

// Enabled reports whether an admin password has been configured.
func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

// Login verifies the admin password and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("admin login: no password configured: %w", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.notifier.Notify(ctx, "Failed admin login: incorrect password attempt.")
		s.logger.Warn().Msg("failed admin login attempt")
		return "", fmt.Errorf("admin login: %w", models.ErrUnauthorized)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "admin",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}

	s.notifier.Notify(ctx, "Admin login: successful login detected.")
	return signed, nil
}

// VerifyToken checks a bearer token issued by Login.
func (s *AuthService) VerifyToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return fmt.Errorf("verify admin token: %w", models.ErrUnauthorized)
	}
	if !token.Valid {
		return fmt.Errorf("invalid admin token: %w", models.ErrUnauthorized)
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
