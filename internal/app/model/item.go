package model

import (
	"time"
)

type ItemCategory string

const (
	CategoryVegetables          ItemCategory = "VEGETABLES"
	CategoryFruits              ItemCategory = "FRUITS"
	CategoryDairyProducts       ItemCategory = "DAIRYPRODUCTS"
	CategoryMeat                ItemCategory = "MEAT"
	CategoryGrainsAndOils       ItemCategory = "GRAINSANDOILS"
	CategorySpicesAndSeasonings ItemCategory = "SPICESANDSEASONINGS"
	CategoryBakingIngredients   ItemCategory = "BAKINGINGREDIENTS"
	CategoryCondiments          ItemCategory = "CONDIMENTS"
	CategorySnacks              ItemCategory = "SNACKS"
	CategorySkincare            ItemCategory = "SKINCARE"
)

// ValidCategory reports whether the category belongs to the closed set.
func ValidCategory(c ItemCategory) bool {
	switch c {
	case CategoryVegetables, CategoryFruits, CategoryDairyProducts, CategoryMeat,
		CategoryGrainsAndOils, CategorySpicesAndSeasonings, CategoryBakingIngredients,
		CategoryCondiments, CategorySnacks, CategorySkincare:
		return true
	}
	return false
}

type Item struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	Name        string       `gorm:"size:50;not null" json:"name"`
	Image       string       `gorm:"size:255" json:"image"`
	Description string       `gorm:"size:255;not null" json:"description"`
	MrpPrice    float64      `gorm:"not null" json:"mrp_price"`
	Quantity    int64        `gorm:"not null;default:0" json:"quantity"`
	Category    ItemCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	VendorID    uint         `gorm:"not null;index" json:"vendor_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relationships
	Vendor User `gorm:"foreignKey:VendorID" json:"-"`
}

func (Item) TableName() string {
	return "items"
}
