package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/luxopay/backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify_Roundtrip(t *testing.T) {
	secret := []byte("test-secret")
	identity := Identity{ID: "user-1", Email: "a@x.com"}

	token, err := GenerateToken(identity, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := IdentityFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestGenerateToken_DistinctWithinSameSecond(t *testing.T) {
	secret := []byte("test-secret")
	identity := Identity{ID: "user-1", Email: "a@x.com"}

	// Back-to-back issuances share the second-granularity iat/exp claims,
	// so distinctness must not depend on the clock having moved.
	first, err := GenerateToken(identity, secret, time.Hour)
	require.NoError(t, err)
	second, err := GenerateToken(identity, secret, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		got, err := IdentityFromToken(token, secret)
		require.NoError(t, err)
		assert.Equal(t, identity, got)
	}
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	_, err := GenerateToken(Identity{ID: "user-1"}, nil, time.Hour)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorNotConfigured))
}

func TestVerify_Expired(t *testing.T) {
	secret := []byte("test-secret")

	// Signed correctly but already past its expiry.
	token, err := GenerateToken(Identity{ID: "user-1", Email: "a@x.com"}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = IdentityFromToken(token, secret)
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := GenerateToken(Identity{ID: "user-1"}, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = IdentityFromToken(token, []byte("secret-b"))
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := IdentityFromToken(tokenString, []byte("test-secret"))
		assert.ErrorIs(t, err, common.ErrorInvalidToken)
	}
}
