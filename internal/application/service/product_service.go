package service

import (
	"context"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// ProductService handles catalog product operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name            string
	Manufacturer    string
	Characteristics string
	CategoryID      *uint
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		Name:            input.Name,
		Manufacturer:    input.Manufacturer,
		Characteristics: input.Characteristics,
		CategoryID:      input.CategoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	Name            *string
	Manufacturer    *string
	Characteristics *string
	CategoryID      *uint
}

// UpdateProduct applies a partial update to a catalog product
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Manufacturer != nil {
		product.Manufacturer = *input.Manufacturer
	}
	if input.Characteristics != nil {
		product.Characteristics = *input.Characteristics
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct removes a catalog product
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists catalog products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}
