package devserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Claims represents the JWT token claims issued by the dev server
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and validates the access/refresh token pair. Revoked
// refresh tokens are tracked in memory; a dev server restart forgets them,
// which is acceptable for a development fixture.
type tokenIssuer struct {
	secret []byte

	mu      sync.Mutex
	revoked map[string]struct{}
}

func newTokenIssuer(secret string) *tokenIssuer {
	return &tokenIssuer{
		secret:  []byte(secret),
		revoked: make(map[string]struct{}),
	}
}

func (t *tokenIssuer) sign(userID, email, tokenType string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// IssuePair issues a fresh access/refresh token pair for the user
func (t *tokenIssuer) IssuePair(userID, email string) (access, refresh string, err error) {
	access, err = t.sign(userID, email, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err = t.sign(userID, email, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return access, refresh, nil
}

// Validate validates a token of the expected type and returns its claims
func (t *tokenIssuer) Validate(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("unexpected token type %q", claims.TokenType)
	}

	if expectedType == tokenTypeRefresh && t.isRevoked(tokenString) {
		return nil, fmt.Errorf("refresh token revoked")
	}

	return claims, nil
}

// Revoke marks a refresh token as unusable
func (t *tokenIssuer) Revoke(tokenString string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[tokenString] = struct{}{}
}

func (t *tokenIssuer) isRevoked(tokenString string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[tokenString]
	return ok
}
