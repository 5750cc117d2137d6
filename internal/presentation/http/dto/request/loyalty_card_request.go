package request

// CreateCardRequest represents a loyalty card creation request
type CreateCardRequest struct {
	CardNumber string `json:"card_number" binding:"required,max=13"`
	FullName   string `json:"full_name" binding:"required,min=2,max=255"`
	Phone      string `json:"phone" binding:"omitempty,max=50"`
	Address    string `json:"address"`
	Discount   int    `json:"discount" binding:"min=0,max=100"`
}

// UpdateCardRequest represents a loyalty card update request
type UpdateCardRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
	Discount *int    `json:"discount" binding:"omitempty,min=0,max=100"`
}
