package service

import (
	"context"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// CategoryService handles product category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists categories with optional name search
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}
