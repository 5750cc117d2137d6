package repository

import (
	"context"
	"errors"

	"github.com/storekeep/pos-api/internal/domain/entity"
	domainRepo "github.com/storekeep/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type storeItemRepository struct {
	db *gorm.DB
}

// NewStoreItemRepository creates a new store item repository
func NewStoreItemRepository(db *gorm.DB) domainRepo.StoreItemRepository {
	return &storeItemRepository{db: db}
}

func (r *storeItemRepository) Create(ctx context.Context, item *entity.StoreItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *storeItemRepository) GetByUPC(ctx context.Context, upc string) (*entity.StoreItem, error) {
	var item entity.StoreItem
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Category").
		First(&item, "upc = ?", upc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByUPCs retrieves multiple store items in a single query
func (r *storeItemRepository) GetByUPCs(ctx context.Context, upcs []string) ([]entity.StoreItem, error) {
	if len(upcs) == 0 {
		return []entity.StoreItem{}, nil
	}
	var items []entity.StoreItem
	err := r.db.WithContext(ctx).
		Where("upc IN ?", upcs).
		Find(&items).Error
	return items, err
}

func (r *storeItemRepository) Update(ctx context.Context, item *entity.StoreItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *storeItemRepository) SetQuantity(ctx context.Context, upc string, quantity int) error {
	return r.db.WithContext(ctx).Model(&entity.StoreItem{}).
		Where("upc = ?", upc).
		Update("quantity", quantity).Error
}

// AtomicDecrementQuantity atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE store_items SET quantity = quantity - amount WHERE upc = ? AND quantity >= amount
func (r *storeItemRepository) AtomicDecrementQuantity(ctx context.Context, upc string, amount int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.StoreItem{}).
		Where("upc = ? AND quantity >= ?", upc, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

func (r *storeItemRepository) Delete(ctx context.Context, upc string) error {
	return r.db.WithContext(ctx).Delete(&entity.StoreItem{}, "upc = ?", upc).Error
}

func (r *storeItemRepository) List(ctx context.Context, params *domainRepo.StoreItemFilterParams) ([]entity.StoreItem, int64, error) {
	var items []entity.StoreItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StoreItem{})

	if params.Search != "" {
		query = query.
			Joins("JOIN products ON products.id = store_items.product_id").
			Where("store_items.upc LIKE ? OR LOWER(products.name) LIKE ?",
				"%"+params.Search+"%", "%"+lower(params.Search)+"%")
	}

	if params.CategoryID != nil {
		if params.Search == "" {
			query = query.Joins("JOIN products ON products.id = store_items.product_id")
		}
		query = query.Where("products.category_id = ?", *params.CategoryID)
	}

	if params.Promotional != nil {
		query = query.Where("store_items.is_promotional = ?", *params.Promotional)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").Preload("Product.Category").
		Order("upc ASC").
		Find(&items).Error

	return items, total, err
}
