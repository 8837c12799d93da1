package model

import (
	"time"
)

type UserRole string

const (
	RoleUser   UserRole = "USER"
	RoleVendor UserRole = "VENDOR"
)

// ValidRole reports whether the role is one of the two supported variants.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleVendor:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	FirstName    string    `gorm:"size:50;not null" json:"first_name"`
	LastName     string    `gorm:"size:50;not null" json:"last_name"`
	Gender       string    `gorm:"size:20" json:"gender"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	PhoneNumber  string    `gorm:"size:15;not null" json:"phone_number"`
	District     string    `gorm:"size:50;not null" json:"district"`
	State        string    `gorm:"size:50;not null" json:"state"`
	Address      string    `gorm:"size:200;not null" json:"address"`
	Zipcode      string    `gorm:"size:10;not null" json:"zipcode"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Items []Item `gorm:"foreignKey:VendorID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
