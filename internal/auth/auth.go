// Package auth verifies the bearer tokens issued by the identity provider
// and resolves the user of a request.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("the request has no bearer token in the Authorization header")
	ErrInvalidToken = errors.New("the bearer token is invalid")
)

// Claims are the claims read from a token. The subject is the ID of the user.
type Claims struct {
	PreferredUsername string `json:"preferred_username"`
	jwt.RegisteredClaims
}

// Identity is the verified identity of a token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}

	return strings.TrimSpace(token), nil
}

// Verify checks the signature and expiry of an HS256 token and returns
// the identity it carries.
func Verify(secret []byte, token string) (Identity, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: the subject is not a UUID", ErrInvalidToken)
	}

	username := claims.PreferredUsername
	if username == "" {
		username = claims.Subject
	}

	return Identity{UserID: id, Username: username}, nil
}
