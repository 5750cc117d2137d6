package service

import (
	"context"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// StoreItemService handles inventory operations
type StoreItemService struct {
	storeItemRepo repository.StoreItemRepository
	productRepo   repository.ProductRepository
}

// NewStoreItemService creates a new store item service
func NewStoreItemService(storeItemRepo repository.StoreItemRepository, productRepo repository.ProductRepository) *StoreItemService {
	return &StoreItemService{
		storeItemRepo: storeItemRepo,
		productRepo:   productRepo,
	}
}

// CreateStoreItemInput represents the create store item input
type CreateStoreItemInput struct {
	UPC           string
	ProductID     uint
	SalePrice     float64
	Quantity      int
	IsPromotional bool
}

// CreateStoreItem registers a sellable item under a new UPC
func (s *StoreItemService) CreateStoreItem(ctx context.Context, input *CreateStoreItemInput) (*entity.StoreItem, error) {
	if input.UPC == "" {
		return nil, apperror.ErrMissingScanCode
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	existing, err := s.storeItemRepo.GetByUPC(ctx, input.UPC)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("UPC already registered")
	}

	item := &entity.StoreItem{
		UPC:           input.UPC,
		ProductID:     input.ProductID,
		SalePrice:     int64(input.SalePrice * 100),
		Quantity:      input.Quantity,
		IsPromotional: input.IsPromotional,
	}

	if err := s.storeItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return s.storeItemRepo.GetByUPC(ctx, input.UPC)
}

// GetStoreItem retrieves a store item by UPC
func (s *StoreItemService) GetStoreItem(ctx context.Context, upc string) (*entity.StoreItem, error) {
	if upc == "" {
		return nil, apperror.ErrMissingScanCode
	}
	item, err := s.storeItemRepo.GetByUPC(ctx, upc)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Store item")
	}
	return item, nil
}

// UpdateStoreItemInput represents the update store item input. Nil fields
// are left unchanged. Quantity here is a replenishment set, not a decrement;
// sales reduce stock only through the sale transaction.
type UpdateStoreItemInput struct {
	ProductID     *uint
	SalePrice     *float64
	Quantity      *int
	IsPromotional *bool
}

// UpdateStoreItem applies a partial update to an inventory record
func (s *StoreItemService) UpdateStoreItem(ctx context.Context, upc string, input *UpdateStoreItemInput) (*entity.StoreItem, error) {
	item, err := s.storeItemRepo.GetByUPC(ctx, upc)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Store item")
	}

	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		item.ProductID = *input.ProductID
	}
	if input.SalePrice != nil {
		item.SalePrice = int64(*input.SalePrice * 100)
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperror.NewBadRequestError("Quantity cannot be negative")
		}
		item.Quantity = *input.Quantity
	}
	if input.IsPromotional != nil {
		item.IsPromotional = *input.IsPromotional
	}

	if err := s.storeItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return s.storeItemRepo.GetByUPC(ctx, upc)
}

// DeleteStoreItem removes an inventory record
func (s *StoreItemService) DeleteStoreItem(ctx context.Context, upc string) error {
	item, err := s.storeItemRepo.GetByUPC(ctx, upc)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Store item")
	}
	return s.storeItemRepo.Delete(ctx, upc)
}

// ListStoreItems lists inventory with filtering
func (s *StoreItemService) ListStoreItems(ctx context.Context, params *repository.StoreItemFilterParams) (*pagination.PaginatedResult[entity.StoreItem], error) {
	items, total, err := s.storeItemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}
