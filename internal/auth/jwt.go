package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"school-service/internal/user"
)

type Claims struct {
	UserID    int       `json:"uid"`
	Username  string    `json:"username"`
	Role      user.Role `json:"role"`
	SessionID string    `json:"sid"`
	jwt.RegisteredClaims
}

// generateToken signs a token identifying the user and its session row.
func generateToken(secret string, usr *user.User, sessionID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	claims := Claims{
		UserID:    usr.ID,
		Username:  usr.Username,
		Role:      usr.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken validates the signature and expiry and extracts the claims.
func parseToken(secret, tokenStr string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}

	claims, _ := tok.Claims.(*Claims)
	if claims == nil || claims.UserID == 0 || claims.SessionID == "" || !claims.Role.Valid() {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// newSessionID returns a random 256-bit hex token.
func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
