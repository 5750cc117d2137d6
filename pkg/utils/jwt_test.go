package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storekeep/pos-api/internal/domain/enum"
)

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(42, "cashier1", enum.RoleCashier)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "cashier1", claims.Username)
	assert.Equal(t, enum.RoleCashier, claims.Role)
}

func TestJWTManager_RefreshTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateRefreshToken(7)
	require.NoError(t, err)

	userID, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(1, "manager1", enum.RoleManager)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(1, "cashier1", enum.RoleCashier)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}
