package repository

import (
	"context"
	"errors"

	"github.com/storekeep/pos-api/internal/domain/entity"
	domainRepo "github.com/storekeep/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

// CreateSale persists a completed sale as a single transaction: conditional
// stock decrements for every line, then the receipt header, then the line
// items. The conditional update ("quantity = quantity - ? WHERE quantity >= ?")
// re-checks stock at commit time, so a concurrent sale that drained the same
// item rolls this one back instead of driving the counter negative.
func (r *receiptRepository) CreateSale(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem, decrements map[string]int) ([]string, error) {
	var failedUPCs []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for upc, amount := range decrements {
			result := tx.Model(&entity.StoreItem{}).
				Where("upc = ? AND quantity >= ?", upc, amount).
				Update("quantity", gorm.Expr("quantity - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedUPCs = append(failedUPCs, upc)
			}
		}

		// If any line lost the race, roll back every decrement
		if len(failedUPCs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		if err := tx.Create(receipt).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ReceiptID = receipt.ID
		}

		return tx.Create(&items).Error
	})

	// Rolled back due to insufficient stock: report the losing UPCs without
	// surfacing the sentinel transaction error
	if errors.Is(err, gorm.ErrInvalidTransaction) && len(failedUPCs) > 0 {
		return failedUPCs, nil
	}

	return nil, err
}

func (r *receiptRepository) GetWithItems(ctx context.Context, id uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Preload("Items.StoreItem.Product").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	receipt.CashierName = receipt.Cashier.FullName
	for i := range receipt.Items {
		receipt.Items[i].ProductName = receipt.Items[i].StoreItem.Product.Name
	}

	return &receipt, nil
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Cashier").
		Order("date DESC").
		Find(&receipts).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range receipts {
		receipts[i].CashierName = receipts[i].Cashier.FullName
	}

	return receipts, total, nil
}

// Delete removes the receipt and its line items together. Stock decremented
// by the original sale is not restored.
func (r *receiptRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ReceiptItem{}, "receipt_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Receipt{}, "id = ?", id).Error
	})
}

func (r *receiptRepository) SumTotals(ctx context.Context, params *domainRepo.SalesFilterParams) (int64, error) {
	var sum int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("COALESCE(SUM(total), 0)")

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	err := query.Scan(&sum).Error
	return sum, err
}

func (r *receiptRepository) SumQuantitySold(ctx context.Context, params *domainRepo.SalesFilterParams) (int64, error) {
	var sum int64

	query := r.db.WithContext(ctx).Model(&entity.ReceiptItem{}).
		Select("COALESCE(SUM(receipt_items.quantity), 0)").
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Where("receipt_items.upc = ?", params.UPC)

	if params.CashierID != nil {
		query = query.Where("receipts.cashier_id = ?", *params.CashierID)
	}

	if params.StartDate != nil {
		query = query.Where("receipts.date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("receipts.date <= ?", *params.EndDate)
	}

	err := query.Scan(&sum).Error
	return sum, err
}
