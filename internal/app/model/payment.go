package model

import (
	"time"
)

// Payment is an immutable record of one payment against one order. The unique
// index on OrderID enforces the one-payment-per-order invariant at the store.
type Payment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
	PaidAmount float64   `gorm:"not null" json:"paid_amount"`
	PaidDate   time.Time `gorm:"not null" json:"paid_date"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
