package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("user-123", "me@example.com", "test-secret", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "me@example.com", claims.Email)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "me@example.com", "test-secret", time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-123", "me@example.com", "test-secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("super_password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "super_password123", hash)

	assert.True(t, CheckPasswordHash("super_password123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
