package token

import (
	"fmt"
	"time"

	"github.com/MorgandeCesso/regulus-back/config"
	appErrors "github.com/MorgandeCesso/regulus-back/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Manager issues and verifies the two token kinds. Access tokens are
// short-lived request credentials; refresh tokens live server-side on the user
// row and are only ever exchanged for new access tokens.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(cfg config.JWT) *Manager {
	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     time.Duration(cfg.AccessExpiresIn) * time.Minute,
		refreshTTL:    time.Duration(cfg.RefreshExpiresIn) * 24 * time.Hour,
	}
}

func (m *Manager) GenerateAccessToken(username string) (string, error) {
	return sign(username, m.accessSecret, m.accessTTL)
}

func (m *Manager) GenerateRefreshToken(username string) (string, error) {
	return sign(username, m.refreshSecret, m.refreshTTL)
}

func sign(subject string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccessToken verifies signature and expiry and returns the subject.
func (m *Manager) ParseAccessToken(tokenString string) (string, error) {
	return parse(tokenString, m.accessSecret)
}

// ParseRefreshToken verifies a stored refresh token's signature and expiry.
func (m *Manager) ParseRefreshToken(tokenString string) (string, error) {
	sub, err := parse(tokenString, m.refreshSecret)
	if err != nil {
		return "", appErrors.ErrInvalidRefreshToken
	}
	return sub, nil
}

func parse(tokenString string, secret []byte, opts ...jwt.ParserOption) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", appErrors.ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", appErrors.ErrInvalidAccessToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", appErrors.ErrInvalidAccessToken
	}
	return sub, nil
}

// Subject extracts the subject of an access token while ignoring expiry. The
// signature still has to check out; this is what the refresh flow uses to
// identify the session owner from an already-expired access token.
func (m *Manager) Subject(tokenString string) (string, error) {
	return parse(tokenString, m.accessSecret, jwt.WithoutClaimsValidation())
}
