package request

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=255"`
	Manufacturer    string `json:"manufacturer" binding:"omitempty,max=255"`
	Characteristics string `json:"characteristics"`
	CategoryID      *uint  `json:"category_id"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=255"`
	Manufacturer    *string `json:"manufacturer" binding:"omitempty,max=255"`
	Characteristics *string `json:"characteristics"`
	CategoryID      *uint   `json:"category_id"`
}
