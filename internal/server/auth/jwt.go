// Package auth issues and verifies the bearer tokens that bind a request to
// a user identity. Verification is a pure function of (token, secret, now);
// the server keeps no session state.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/luxopay/backend/internal/common"
)

// Identity is the user identity a token carries: the subject claim holds the
// user id, a custom claim holds the email.
type Identity struct {
	ID    string
	Email string
}

// Claims adds the email claim to the registered JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken signs an HS256 token for the identity, valid for
// validityDuration from now. An empty secret is a deployment problem and
// yields common.ErrorNotConfigured.
func GenerateToken(identity Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("%w: token signing secret is not set", common.ErrorNotConfigured)
	}

	// The timestamps have second granularity, so a unique jti keeps tokens
	// issued within the same second distinct.
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: identity.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// IdentityFromToken parses and verifies a token string and returns the
// embedded identity. Malformed tokens, bad signatures and expired tokens all
// come back as common.ErrorInvalidToken; callers must not learn which.
func IdentityFromToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, common.ErrorInvalidToken
	}

	if !token.Valid {
		return Identity{}, common.ErrorInvalidToken
	}

	return Identity{ID: claims.Subject, Email: claims.Email}, nil
}
