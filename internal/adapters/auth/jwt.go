package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mwestberg/todo-api/internal/platform/config"
	"github.com/mwestberg/todo-api/internal/ports"
)

// ErrInvalidToken is returned for any token that fails verification:
// malformed, expired, wrong signature, or wrong signing method. Callers map
// it to domain.ErrUnauthorized without distinguishing the cases.
var ErrInvalidToken = errors.New("invalid token")

// Compile-time check that TokenManager implements ports.TokenManager.
var _ ports.TokenManager = (*TokenManager)(nil)

// TokenManager issues and verifies HS256-signed JWTs. The signing secret and
// token lifetime come from process-wide configuration loaded once at startup.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenManager creates a TokenManager from the auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue signs a token for the given subject with the configured lifetime.
// Each token carries a unique jti so two logins in the same second still
// produce distinct tokens.
func (m *TokenManager) Issue(subject string) (string, int64, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("signing token: %w", err)
	}

	return signed, int64(m.ttl.Seconds()), nil
}

// Verify checks the token's signature and time claims and returns its
// subject. All failure modes collapse into ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
