package model

import (
	"time"
)

// Cart is a single cart line: one (user, item) pair with a quantity and the
// item price captured at add time. The composite unique index backs the
// merge-on-add upsert in CartService.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_carts_user_item" json:"user_id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_carts_user_item" json:"item_id"`
	Quantity  int64     `gorm:"not null;default:1" json:"quantity"`
	MrpPrice  float64   `gorm:"not null" json:"mrp_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Item Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}
