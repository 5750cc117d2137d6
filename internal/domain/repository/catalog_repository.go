package repository

import (
	"context"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
}

// ProductRepository defines the interface for catalog product persistence
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}

// ProductFilterParams represents filter parameters for product listing
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uint
}
