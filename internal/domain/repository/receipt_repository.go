package repository

import (
	"context"
	"time"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// ReceiptRepository defines the interface for sale transaction persistence.
// CreateSale is the single write path for completed sales: all stock
// decrements and all inserts commit or roll back together.
type ReceiptRepository interface {
	// CreateSale persists the receipt, its line items and the stock
	// decrements for each UPC as one transaction. Decrements are
	// conditional ("decrement only if quantity >= requested"); any line
	// that loses the race rolls the whole transaction back, and its UPCs
	// are returned in failedUPCs with a nil error.
	CreateSale(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem, decrements map[string]int) (failedUPCs []string, err error)
	// GetWithItems retrieves a receipt with its line items, the cashier
	// name and per-line product names. Returns nil when not found.
	GetWithItems(ctx context.Context, id uint) (*entity.Receipt, error)
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	// Delete removes the receipt and its line items in one transaction.
	// Stock is not restored.
	Delete(ctx context.Context, id uint) error
	// SumTotals returns the sum of pre-VAT totals (in cents) over
	// receipts matching the filter; 0 when no rows match.
	SumTotals(ctx context.Context, params *SalesFilterParams) (int64, error)
	// SumQuantitySold returns the total quantity sold for the filter's
	// UPC across matching receipts; 0 when no rows match.
	SumQuantitySold(ctx context.Context, params *SalesFilterParams) (int64, error)
}

// ReceiptFilterParams represents filter parameters for receipt listing.
// Filters are conjunctive; a nil filter leaves that dimension unconstrained.
type ReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	CashierID  *uint
	StartDate  *time.Time
	EndDate    *time.Time
}

// SalesFilterParams represents filter parameters for the aggregate
// analytics queries. UPC is only consulted by SumQuantitySold.
type SalesFilterParams struct {
	UPC       string
	CashierID *uint
	StartDate *time.Time
	EndDate   *time.Time
}
