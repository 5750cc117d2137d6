package request

// SaleLineRequest represents one scanned line of a sale
type SaleLineRequest struct {
	UPC      string `json:"upc" binding:"required,max=12"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CreateReceiptRequest represents a sale creation request
type CreateReceiptRequest struct {
	CardNumber *string           `json:"card_number" binding:"omitempty,max=13"`
	Items      []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
}
