package repository

import (
	"context"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// StoreItemRepository defines the interface for inventory persistence.
// Stock is only ever reduced through AtomicDecrementQuantity (or the sale
// transaction in ReceiptRepository); SetQuantity is reserved for manager
// replenishment and never races with sales on correctness (the conditional
// decrement re-checks at commit time).
type StoreItemRepository interface {
	Create(ctx context.Context, item *entity.StoreItem) error
	GetByUPC(ctx context.Context, upc string) (*entity.StoreItem, error)
	// GetByUPCs retrieves multiple store items in a single query
	GetByUPCs(ctx context.Context, upcs []string) ([]entity.StoreItem, error)
	Update(ctx context.Context, item *entity.StoreItem) error
	SetQuantity(ctx context.Context, upc string, quantity int) error
	// AtomicDecrementQuantity decrements stock only if sufficient quantity
	// exists; returns false when the conditional update matched no row.
	AtomicDecrementQuantity(ctx context.Context, upc string, amount int) (bool, error)
	Delete(ctx context.Context, upc string) error
	List(ctx context.Context, params *StoreItemFilterParams) ([]entity.StoreItem, int64, error)
}

// StoreItemFilterParams represents filter parameters for store item listing
type StoreItemFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	CategoryID  *uint
	Promotional *bool
}
