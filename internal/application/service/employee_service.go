package service

import (
	"context"
	"time"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/enum"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
	"github.com/storekeep/pos-api/pkg/utils"
)

// EmployeeService handles staff account management
type EmployeeService struct {
	userRepo repository.UserRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(userRepo repository.UserRepository) *EmployeeService {
	return &EmployeeService{userRepo: userRepo}
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	Username  string
	Password  string
	FullName  string
	Role      enum.Role
	Salary    float64
	StartDate time.Time
	BirthDate time.Time
	Phone     string
	Address   string
}

// CreateEmployee creates a new staff account
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, apperror.NewBadRequestError("Role must be manager or cashier")
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:  input.Username,
		Password:  hashedPassword,
		FullName:  input.FullName,
		Role:      input.Role,
		Salary:    int64(input.Salary * 100),
		StartDate: input.StartDate,
		BirthDate: input.BirthDate,
		Phone:     input.Phone,
		Address:   input.Address,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return user, nil
}

// UpdateEmployeeInput represents the update employee input. Nil fields are
// left unchanged; a non-nil Password is re-hashed.
type UpdateEmployeeInput struct {
	Username  *string
	Password  *string
	FullName  *string
	Role      *enum.Role
	Salary    *float64
	StartDate *time.Time
	BirthDate *time.Time
	Phone     *string
	Address   *string
}

// UpdateEmployee applies a partial update to a staff account
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint, input *UpdateEmployeeInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	if input.Username != nil && *input.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Username already taken")
		}
		user.Username = *input.Username
	}

	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperror.NewBadRequestError("Role must be manager or cashier")
		}
		user.Role = *input.Role
	}
	if input.Salary != nil {
		user.Salary = int64(*input.Salary * 100)
	}
	if input.StartDate != nil {
		user.StartDate = *input.StartDate
	}
	if input.BirthDate != nil {
		user.BirthDate = *input.BirthDate
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteEmployee removes a staff account
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("Employee")
	}
	return s.userRepo.Delete(ctx, id)
}

// ListEmployees lists staff accounts with optional name search
func (s *EmployeeService) ListEmployees(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}
