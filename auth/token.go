package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret means tokens cannot be signed or checked.
var ErrNoSecret = errors.New("session secret is not set")

// Tokens signs session ids into HS256 JWTs for the dashboard cookie.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

const issuer = "tradeboard"

// Sign returns a token carrying the session id and expiry.
func (t *Tokens) Sign(s *Session) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSecret
	}
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(s.Created),
		ExpiresAt: jwt.NewNumericDate(s.Expires),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse validates a token and returns the session id inside it. The caller
// must still look the id up; a valid token for an ended session is useless.
func (t *Tokens) Parse(token string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSecret
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	if claims.ID == "" {
		return "", errors.New("session token: no session id")
	}
	return claims.ID, nil
}
