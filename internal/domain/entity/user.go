package entity

import (
	"encoding/json"
	"time"

	"github.com/storekeep/pos-api/internal/domain/enum"
)

// User represents an employee account
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;unique;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Role      enum.Role `gorm:"size:20;not null;index" json:"role"`
	Salary    int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	StartDate time.Time `gorm:"type:date" json:"start_date"`
	BirthDate time.Time `gorm:"type:date" json:"birth_date"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:CashierID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User
	return json.Marshal(&struct {
		Alias
		Salary float64 `json:"salary"`
	}{
		Alias:  Alias(u),
		Salary: float64(u.Salary) / 100,
	})
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsManager checks if the user has the manager role
func (u *User) IsManager() bool {
	return u.Role == enum.RoleManager
}
