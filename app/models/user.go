package models

import "gorm.io/gorm"

// User is a registered storefront customer (or an admin).
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"type:text" json:"address"`
	Role     string `gorm:"size:50;default:user" json:"role"`
}
