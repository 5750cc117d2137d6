package entity

import (
	"encoding/json"
	"time"
)

// StoreItem represents an inventory unit identified by its UPC scan code.
// Quantity is the shared hot counter mutated by sales; it must only be
// decremented through the conditional-decrement repository path so it can
// never be observed negative.
type StoreItem struct {
	UPC           string    `gorm:"primaryKey;size:12;column:upc" json:"upc"`
	ProductID     uint      `gorm:"not null;index" json:"product_id"`
	SalePrice     int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity      int       `gorm:"not null;default:0" json:"quantity"`
	IsPromotional bool      `gorm:"default:false" json:"is_promotional"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s StoreItem) MarshalJSON() ([]byte, error) {
	type Alias StoreItem
	return json.Marshal(&struct {
		Alias
		SalePrice float64 `json:"sale_price"`
	}{
		Alias:     Alias(s),
		SalePrice: float64(s.SalePrice) / 100,
	})
}

// TableName returns the table name for the StoreItem model
func (StoreItem) TableName() string {
	return "store_items"
}

// GetSalePriceDecimal returns the sale price as a decimal (for display)
func (s *StoreItem) GetSalePriceDecimal() float64 {
	return float64(s.SalePrice) / 100
}

// SetSalePriceFromDecimal sets the sale price from a decimal value
func (s *StoreItem) SetSalePriceFromDecimal(price float64) {
	s.SalePrice = int64(price*100 + 0.5)
}
