package entity

import "time"

// Category represents a product category
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Product represents a catalog product type shared by zero or more store items
type Product struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CategoryID      *uint     `gorm:"index" json:"category_id,omitempty"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Manufacturer    string    `gorm:"size:255" json:"manufacturer"`
	Characteristics string    `gorm:"type:text" json:"characteristics"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	StoreItems []StoreItem `gorm:"foreignKey:ProductID" json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
