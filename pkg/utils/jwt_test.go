package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "inkwell")

	pair, err := m.GenerateTokenPair("user-1", "Alice", time.Minute, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", access.UserID)
	assert.Equal(t, "Alice", access.Name)
	assert.Equal(t, "access", access.Type)
	assert.Equal(t, "inkwell", access.Issuer)

	refresh, err := m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refresh.Type)
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", "inkwell")
	other := NewJWTManager("secret-b", "inkwell")

	token, err := m.GenerateToken("user-1", "Alice", "access", time.Minute)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", "inkwell")

	token, err := m.GenerateToken("user-1", "Alice", "access", -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseToken_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", "inkwell")

	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
