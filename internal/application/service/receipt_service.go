package service

import (
	"context"
	"strings"
	"time"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// VAT rate and promotional markdown, both in percent
const (
	vatRatePercent       = 20
	promoMarkdownPercent = 20
)

// ReceiptService handles sale transactions and receipt queries
type ReceiptService struct {
	receiptRepo   repository.ReceiptRepository
	storeItemRepo repository.StoreItemRepository
	cardRepo      repository.LoyaltyCardRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	storeItemRepo repository.StoreItemRepository,
	cardRepo repository.LoyaltyCardRepository,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:   receiptRepo,
		storeItemRepo: storeItemRepo,
		cardRepo:      cardRepo,
	}
}

// SaleItemInput represents one scanned line of a sale
type SaleItemInput struct {
	UPC      string
	Quantity int
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CashierID  uint
	CardNumber *string
	Items      []SaleItemInput
}

// roundedPercent computes value * percent / 100 in cents, rounding half up
func roundedPercent(value int64, percent int64) int64 {
	return (value*percent + 50) / 100
}

// effectivePrice returns the per-unit charge for a store item. Promotional
// items sell at a 20% markdown from the listed price.
func effectivePrice(item *entity.StoreItem) int64 {
	if item.IsPromotional {
		return roundedPercent(item.SalePrice, 100-promoMarkdownPercent)
	}
	return item.SalePrice
}

// CreateSale validates the scanned lines, prices them, and commits the
// receipt together with its stock decrements as one transaction. Either the
// whole sale applies or nothing does.
func (s *ReceiptService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Receipt, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must contain at least one item")
	}

	upcs := make([]string, 0, len(input.Items))
	for _, line := range input.Items {
		if line.UPC == "" {
			return nil, apperror.ErrMissingScanCode
		}
		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Quantity must be at least 1 for UPC " + line.UPC)
		}
		upcs = append(upcs, line.UPC)
	}

	// Batch fetch all store items in one query (prevents N+1)
	items, err := s.storeItemRepo.GetByUPCs(ctx, upcs)
	if err != nil {
		return nil, err
	}

	itemMap := make(map[string]*entity.StoreItem, len(items))
	for i := range items {
		itemMap[items[i].UPC] = &items[i]
	}

	// Price each line against the current listing and accumulate the
	// per-UPC decrement. Repeated UPCs stay separate lines but their
	// quantities combine for the stock check.
	var total int64
	receiptItems := make([]entity.ReceiptItem, 0, len(input.Items))
	decrements := make(map[string]int)

	for _, line := range input.Items {
		item, exists := itemMap[line.UPC]
		if !exists {
			return nil, apperror.NewUnknownItemError(line.UPC)
		}

		price := effectivePrice(item)
		total += price * int64(line.Quantity)
		decrements[line.UPC] += line.Quantity

		receiptItems = append(receiptItems, entity.ReceiptItem{
			UPC:         line.UPC,
			Quantity:    line.Quantity,
			PriceAtSale: price,
		})
	}

	// Pre-check stock so an obviously short sale fails before touching the
	// database. The transaction re-checks at commit time regardless.
	for upc, amount := range decrements {
		if itemMap[upc].Quantity < amount {
			return nil, apperror.NewInsufficientStockError(upc)
		}
	}

	vat := roundedPercent(total, vatRatePercent)

	// A loyalty card discounts the VAT portion only. An unresolvable card
	// number is ignored rather than failing the sale.
	var cardNumber *string
	if input.CardNumber != nil && *input.CardNumber != "" {
		card, err := s.cardRepo.GetByNumber(ctx, *input.CardNumber)
		if err != nil {
			return nil, err
		}
		if card != nil {
			vat = roundedPercent(vat, int64(100-card.Discount))
			cardNumber = &card.CardNumber
		}
	}

	receipt := &entity.Receipt{
		CashierID:  input.CashierID,
		Date:       time.Now(),
		Total:      total,
		VAT:        vat,
		CardNumber: cardNumber,
	}

	failedUPCs, err := s.receiptRepo.CreateSale(ctx, receipt, receiptItems, decrements)
	if err != nil {
		return nil, apperror.ErrTransactionAborted
	}
	if len(failedUPCs) > 0 {
		return nil, apperror.NewInsufficientStockError(strings.Join(failedUPCs, ", "))
	}

	return s.receiptRepo.GetWithItems(ctx, receipt.ID)
}

// GetReceipt retrieves a receipt by ID. Cashiers may only read their own
// receipts; managers may read any.
func (s *ReceiptService) GetReceipt(ctx context.Context, id uint, requesterID uint, isManager bool) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	if !isManager && receipt.CashierID != requesterID {
		return nil, apperror.ErrForbidden
	}

	return receipt, nil
}

// ListReceipts lists receipts newest first with optional filtering
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// DeleteReceipt removes a receipt and its lines. Stock sold on the receipt
// stays sold.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uint) error {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}

	return s.receiptRepo.Delete(ctx, id)
}

// TotalSales returns the sum of pre-VAT totals (in cents) over receipts
// matching the filter
func (s *ReceiptService) TotalSales(ctx context.Context, params *repository.SalesFilterParams) (int64, error) {
	return s.receiptRepo.SumTotals(ctx, params)
}

// QuantitySold returns the total units sold of a single store item across
// receipts matching the filter
func (s *ReceiptService) QuantitySold(ctx context.Context, params *repository.SalesFilterParams) (int64, error) {
	if params.UPC == "" {
		return 0, apperror.ErrMissingScanCode
	}
	return s.receiptRepo.SumQuantitySold(ctx, params)
}
