package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storekeep/pos-api/internal/domain/enum"
	infraRepo "github.com/storekeep/pos-api/internal/infrastructure/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
	"github.com/storekeep/pos-api/pkg/utils"
)

func TestEmployeeLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(infraRepo.NewUserRepository(db))
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, &CreateEmployeeInput{
		Username:  "cashier1",
		Password:  "initial-password",
		FullName:  "Ada Till",
		Role:      enum.RoleCashier,
		Salary:    1850.50,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		BirthDate: time.Date(1998, 7, 12, 0, 0, 0, 0, time.UTC),
		Phone:     "+380501234567",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(185050), created.Salary)
	assert.True(t, utils.CheckPasswordHash("initial-password", created.Password))

	// Duplicate username is rejected
	_, err = svc.CreateEmployee(ctx, &CreateEmployeeInput{
		Username:  "cashier1",
		Password:  "whatever-password",
		FullName:  "Imposter",
		Role:      enum.RoleCashier,
		StartDate: time.Now(),
		BirthDate: time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Invalid role is rejected
	_, err = svc.CreateEmployee(ctx, &CreateEmployeeInput{
		Username:  "cashier2",
		Password:  "whatever-password",
		FullName:  "Someone",
		Role:      enum.Role("janitor"),
		StartDate: time.Now(),
		BirthDate: time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Partial update re-hashes only a provided password
	newName := "Ada Register"
	newPassword := "rotated-password"
	updated, err := svc.UpdateEmployee(ctx, created.ID, &UpdateEmployeeInput{
		FullName: &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Register", updated.FullName)
	assert.True(t, utils.CheckPasswordHash("rotated-password", updated.Password))
	assert.Equal(t, "cashier1", updated.Username)

	result, err := svc.ListEmployees(ctx, pagination.DefaultPagination(), "ada")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, created.ID, result.Items[0].ID)

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))

	_, err = svc.GetEmployee(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
