package entity

import "time"

// LoyaltyCard represents a customer discount card identified by its card number
type LoyaltyCard struct {
	CardNumber string    `gorm:"primaryKey;size:13" json:"card_number"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Phone      string    `gorm:"size:50" json:"phone"`
	Address    string    `gorm:"type:text" json:"address"`
	Discount   int       `gorm:"not null;default:0" json:"discount"` // Percent, 0-100
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:CardNumber;references:CardNumber" json:"-"`
}

// TableName returns the table name for the LoyaltyCard model
func (LoyaltyCard) TableName() string {
	return "loyalty_cards"
}
