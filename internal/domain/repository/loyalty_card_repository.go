package repository

import (
	"context"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// LoyaltyCardRepository defines the interface for customer card persistence
type LoyaltyCardRepository interface {
	Create(ctx context.Context, card *entity.LoyaltyCard) error
	GetByNumber(ctx context.Context, cardNumber string) (*entity.LoyaltyCard, error)
	Update(ctx context.Context, card *entity.LoyaltyCard) error
	Delete(ctx context.Context, cardNumber string) error
	List(ctx context.Context, params *LoyaltyCardFilterParams) ([]entity.LoyaltyCard, int64, error)
}

// LoyaltyCardFilterParams represents filter parameters for card listing
type LoyaltyCardFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matched against holder name, case-insensitive
	SortOrder  string // "asc" or "desc" by holder name
}
