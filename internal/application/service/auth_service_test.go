package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/enum"
	infraRepo "github.com/storekeep/pos-api/internal/infrastructure/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/utils"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewUserRepository(db), jwtManager)
}

func createManagerWithPassword(t *testing.T, db *gorm.DB, username, password string) *entity.User {
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &entity.User{
		Username: username,
		Password: hashed,
		FullName: "Store Manager",
		Role:     enum.RoleManager,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createManagerWithPassword(t, db, "manager1", "secret-password")

	t.Run("valid credentials", func(t *testing.T) {
		output, err := svc.Login(context.Background(), &LoginInput{
			Username: "manager1",
			Password: "secret-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, output.AccessToken)
		assert.NotEmpty(t, output.RefreshToken)
		assert.Equal(t, "manager1", output.User.Username)
		assert.True(t, output.User.IsManager())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginInput{
			Username: "manager1",
			Password: "wrong-password",
		})
		require.Error(t, err)
		assert.Equal(t, apperror.ErrInvalidCredentials, apperror.GetAppError(err))
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginInput{
			Username: "nobody",
			Password: "secret-password",
		})
		require.Error(t, err)
		assert.Equal(t, apperror.ErrInvalidCredentials, apperror.GetAppError(err))
	})
}

func TestRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createManagerWithPassword(t, db, "manager1", "secret-password")

	output, err := svc.Login(context.Background(), &LoginInput{
		Username: "manager1",
		Password: "secret-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), output.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "manager1", refreshed.User.Username)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperror.ErrInvalidToken, apperror.GetAppError(err))
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := createManagerWithPassword(t, db, "manager1", "secret-password")

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, profile.Username)

	_, err = svc.GetProfile(context.Background(), user.ID+1000)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
