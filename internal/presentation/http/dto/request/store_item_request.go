package request

// CreateStoreItemRequest represents a store item creation request
type CreateStoreItemRequest struct {
	UPC           string  `json:"upc" binding:"required,max=12"`
	ProductID     uint    `json:"product_id" binding:"required"`
	SalePrice     float64 `json:"sale_price" binding:"min=0"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	IsPromotional bool    `json:"is_promotional"`
}

// UpdateStoreItemRequest represents a store item update request
type UpdateStoreItemRequest struct {
	ProductID     *uint    `json:"product_id"`
	SalePrice     *float64 `json:"sale_price" binding:"omitempty,min=0"`
	Quantity      *int     `json:"quantity" binding:"omitempty,min=0"`
	IsPromotional *bool    `json:"is_promotional"`
}
