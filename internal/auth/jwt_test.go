package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	require.Error(t, InitJWTSecret())
}

func TestGenerateAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	tok, err := GenerateJWT(42, "alice")
	require.NoError(t, err)

	parsed, err := VerifyJWT(tok)
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	userID, ok := claims["user_id"].(float64)
	require.True(t, ok)
	assert.Equal(t, uint(42), uint(userID))
	assert.Equal(t, "alice", claims["username"])
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	require.NoError(t, InitJWTSecret())

	tok, err := GenerateJWT(1, "alice")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	require.NoError(t, InitJWTSecret())

	_, err = VerifyJWT(tok)
	require.Error(t, err)
}

func TestVerifyGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	_, err := VerifyJWT("not-a-token")
	require.Error(t, err)
}
