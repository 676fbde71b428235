package models

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Category groups products in the catalog.
type Category struct {
	gorm.Model
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	Products []Product `gorm:"constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

// BeforeSave derives the slug from the name when none is given.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

// PlaceholderProductSlug identifies the stand-in product used for
// bot-originated custom bouquet orders.
const PlaceholderProductSlug = "custom-bouquet"

// Product is a single catalog item.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:200;not null;index" json:"name"`
	Slug        string  `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	ImagePath   string  `gorm:"size:255" json:"image_path"`
	IsAvailable bool    `gorm:"default:true" json:"is_available"`
	CategoryID  uint    `gorm:"not null;index" json:"category_id"`
}

// BeforeSave derives the slug from the name when none is given.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return nil
}

// Slugify lowercases s and replaces runs of non-alphanumeric runes with a
// single hyphen. Non-ASCII letters are kept, so Cyrillic names slugify too.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
