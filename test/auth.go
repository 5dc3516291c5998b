package test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Secret is the HS256 secret used for tokens in tests.
var Secret = []byte("easyfinances-test-secret")

// UserID is the subject of the tokens sent by Request unless
// another Authorization header is passed.
var UserID = uuid.MustParse("5e0ac3b8-44c1-4c7d-9b3a-0b0f8a0df2b1")

// Token returns a signed bearer token for the user.
func Token(t *testing.T, userID uuid.UUID) string {
	return SignedToken(t, Secret, jwt.MapClaims{
		"sub":                userID.String(),
		"preferred_username": "tester",
		"exp":                time.Now().Add(time.Hour).Unix(),
	})
}

// SignedToken signs arbitrary claims with the secret.
func SignedToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.Nil(t, err, "Token could not be signed")
	return token
}

// Authorization returns the header map for a request as the user.
func Authorization(t *testing.T, userID uuid.UUID) map[string]string {
	return map[string]string{"Authorization": "Bearer " + Token(t, userID)}
}
