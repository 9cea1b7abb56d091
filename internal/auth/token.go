package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vaultapi/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the server-trusted assertions carried by a session token:
// the user's id and their subscription tier at login time.
type Claims struct {
	jwt.RegisteredClaims
	UserID string     `json:"uid"`
	Tier   model.Tier `json:"tier"`
}

// TokenManager issues and verifies HS256-signed session tokens. Tokens are
// stateless; there is no refresh or revocation short of rotating the secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager. ttl is the fixed validity window for
// every issued token (a hard cliff forcing re-login).
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue signs a new session token for the given user.
func (m *TokenManager) Issue(userID string, tier model.Tier) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
		Tier:   tier,
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a session token, returning its claims.
// Expired tokens surface as ErrExpiredToken; everything else as ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
