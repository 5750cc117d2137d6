package service

import (
	"context"

	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// LoyaltyCardService handles customer loyalty card operations
type LoyaltyCardService struct {
	cardRepo repository.LoyaltyCardRepository
}

// NewLoyaltyCardService creates a new loyalty card service
func NewLoyaltyCardService(cardRepo repository.LoyaltyCardRepository) *LoyaltyCardService {
	return &LoyaltyCardService{cardRepo: cardRepo}
}

// CreateCardInput represents the create card input
type CreateCardInput struct {
	CardNumber string
	FullName   string
	Phone      string
	Address    string
	Discount   int
}

// CreateCard registers a new loyalty card
func (s *LoyaltyCardService) CreateCard(ctx context.Context, input *CreateCardInput) (*entity.LoyaltyCard, error) {
	if input.Discount < 0 || input.Discount > 100 {
		return nil, apperror.NewBadRequestError("Discount must be between 0 and 100 percent")
	}

	existing, err := s.cardRepo.GetByNumber(ctx, input.CardNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Card number already registered")
	}

	card := &entity.LoyaltyCard{
		CardNumber: input.CardNumber,
		FullName:   input.FullName,
		Phone:      input.Phone,
		Address:    input.Address,
		Discount:   input.Discount,
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// GetCard retrieves a loyalty card by number
func (s *LoyaltyCardService) GetCard(ctx context.Context, cardNumber string) (*entity.LoyaltyCard, error) {
	card, err := s.cardRepo.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Loyalty card")
	}
	return card, nil
}

// UpdateCardInput represents the update card input. Nil fields are left
// unchanged.
type UpdateCardInput struct {
	FullName *string
	Phone    *string
	Address  *string
	Discount *int
}

// UpdateCard applies a partial update to a loyalty card
func (s *LoyaltyCardService) UpdateCard(ctx context.Context, cardNumber string, input *UpdateCardInput) (*entity.LoyaltyCard, error) {
	card, err := s.cardRepo.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Loyalty card")
	}

	if input.FullName != nil {
		card.FullName = *input.FullName
	}
	if input.Phone != nil {
		card.Phone = *input.Phone
	}
	if input.Address != nil {
		card.Address = *input.Address
	}
	if input.Discount != nil {
		if *input.Discount < 0 || *input.Discount > 100 {
			return nil, apperror.NewBadRequestError("Discount must be between 0 and 100 percent")
		}
		card.Discount = *input.Discount
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// DeleteCard removes a loyalty card
func (s *LoyaltyCardService) DeleteCard(ctx context.Context, cardNumber string) error {
	card, err := s.cardRepo.GetByNumber(ctx, cardNumber)
	if err != nil {
		return err
	}
	if card == nil {
		return apperror.NewNotFoundError("Loyalty card")
	}
	return s.cardRepo.Delete(ctx, cardNumber)
}

// ListCards lists loyalty cards with holder-name search and sorting
func (s *LoyaltyCardService) ListCards(ctx context.Context, params *repository.LoyaltyCardFilterParams) (*pagination.PaginatedResult[entity.LoyaltyCard], error) {
	cards, total, err := s.cardRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(cards, pag), nil
}
