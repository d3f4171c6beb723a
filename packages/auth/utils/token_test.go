package utils

import (
	"testing"

	"liga-api/packages/auth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := models.User{ID: 7, Email: "user@liga.local"}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "user@liga.local", claims.Email)
}

func TestTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
