package entity

import (
	"encoding/json"
	"time"
)

// Receipt represents a completed sale transaction. Totals are computed once
// at creation and never recomputed; line items are lifecycle-bound to the
// receipt (created together, deleted together).
type Receipt struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CashierID  uint      `gorm:"not null;index" json:"cashier_id"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	Total      int64     `gorm:"not null" json:"-"` // Pre-VAT total in cents, excluded from JSON
	VAT        int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CardNumber *string   `gorm:"size:13;index" json:"card_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Cashier User          `gorm:"foreignKey:CashierID" json:"-"`
	Card    *LoyaltyCard  `gorm:"foreignKey:CardNumber;references:CardNumber" json:"-"`
	Items   []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`

	// CashierName is populated by queries that join the cashier; not a column.
	CashierName string `gorm:"-" json:"cashier_name,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
		VAT   float64 `json:"vat"`
	}{
		Alias: Alias(r),
		Total: float64(r.Total) / 100,
		VAT:   float64(r.VAT) / 100,
	})
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// GetTotalDecimal returns the pre-VAT total as a decimal
func (r *Receipt) GetTotalDecimal() float64 {
	return float64(r.Total) / 100
}

// ReceiptItem represents a line item in a receipt. PriceAtSale is a snapshot
// of the effective unit price at creation time, independent of any later
// change to the store item's price.
type ReceiptItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReceiptID   uint      `gorm:"not null;index" json:"receipt_id"`
	UPC         string    `gorm:"size:12;not null;index;column:upc" json:"upc"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	PriceAtSale int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Receipt   Receipt   `gorm:"foreignKey:ReceiptID" json:"-"`
	StoreItem StoreItem `gorm:"foreignKey:UPC;references:UPC" json:"-"`

	// ProductName is populated by queries that join through to the product.
	ProductName string `gorm:"-" json:"product_name,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ri ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		PriceAtSale float64 `json:"price_at_sale"`
	}{
		Alias:       Alias(ri),
		PriceAtSale: float64(ri.PriceAtSale) / 100,
	})
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
