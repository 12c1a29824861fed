package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateTokenCarriesClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateToken("user-123", "kelly@surfshop.fr", "staff", true)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "kelly@surfshop.fr", claims["email"])
	assert.Equal(t, "staff", claims["role"])
	assert.Equal(t, true, claims["validated"])
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken("user-123", "kelly@surfshop.fr", "staff", true)
	assert.Error(t, err)
}

func TestResetTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateResetToken("user-456")
	require.NoError(t, err)

	userID, err := ParseResetToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-456", userID)
}

func TestParseResetTokenRejectsSessionToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// A regular session token lacks the reset purpose claim
	tokenString, err := GenerateToken("user-789", "kelly@surfshop.fr", "customer", true)
	require.NoError(t, err)

	_, err = ParseResetToken(tokenString)
	assert.Error(t, err)
}

func TestParseResetTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseResetToken("not.a.token")
	assert.Error(t, err)
}
