package repository

import (
	"context"
	"errors"

	"github.com/storekeep/pos-api/internal/domain/entity"
	domainRepo "github.com/storekeep/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type loyaltyCardRepository struct {
	db *gorm.DB
}

// NewLoyaltyCardRepository creates a new loyalty card repository
func NewLoyaltyCardRepository(db *gorm.DB) domainRepo.LoyaltyCardRepository {
	return &loyaltyCardRepository{db: db}
}

func (r *loyaltyCardRepository) Create(ctx context.Context, card *entity.LoyaltyCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *loyaltyCardRepository) GetByNumber(ctx context.Context, cardNumber string) (*entity.LoyaltyCard, error) {
	var card entity.LoyaltyCard
	err := r.db.WithContext(ctx).First(&card, "card_number = ?", cardNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *loyaltyCardRepository) Update(ctx context.Context, card *entity.LoyaltyCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *loyaltyCardRepository) Delete(ctx context.Context, cardNumber string) error {
	return r.db.WithContext(ctx).Delete(&entity.LoyaltyCard{}, "card_number = ?", cardNumber).Error
}

func (r *loyaltyCardRepository) List(ctx context.Context, params *domainRepo.LoyaltyCardFilterParams) ([]entity.LoyaltyCard, int64, error) {
	var cards []entity.LoyaltyCard
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LoyaltyCard{})

	if params.Search != "" {
		query = query.Where("LOWER(full_name) LIKE ?", "%"+lower(params.Search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "full_name ASC"
	if params.SortOrder == "desc" || params.SortOrder == "DESC" {
		order = "full_name DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(order).
		Find(&cards).Error

	return cards, total, err
}
