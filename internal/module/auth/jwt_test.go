package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager(secret string) *JWTManager {
	return NewJWTManager(&JWTConfig{
		Secret:            secret,
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "threadly-test",
	})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := newTestJWTManager("test-secret")
	userID := uuid.New()

	token, expiresAt, err := manager.GenerateAccessToken(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "threadly-test", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := newTestJWTManager("test-secret")
	other := newTestJWTManager("different-secret")

	token, _, err := manager.GenerateAccessToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: -1 * time.Minute,
		Issuer:            "threadly-test",
	})

	token, _, err := manager.GenerateAccessToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_GarbageToken(t *testing.T) {
	manager := newTestJWTManager("test-secret")

	_, err := manager.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
