package models

import "gorm.io/gorm"

// MaxPhotoBytes caps the inline product photo. Uploads above this size are
// rejected before anything is written.
const MaxPhotoBytes = 1 << 20 // 1 MiB

// Product represents a product in the catalogue. The photo is stored inline
// as a blob and served from its own endpoint; listing queries must exclude
// Photo to keep payloads small.
type Product struct {
	gorm.Model
	Name             string   `gorm:"size:255;not null;index" json:"name"`
	Slug             string   `gorm:"size:255;index"          json:"slug"`
	Description      string   `gorm:"type:text;not null"      json:"description"`
	Price            float64  `gorm:"not null;default:0"      json:"price"`
	Quantity         int      `gorm:"not null;default:0"      json:"quantity"`
	Shipping         bool     `gorm:"default:false"           json:"shipping"`
	Photo            []byte   `gorm:"type:blob"               json:"-"`
	PhotoContentType string   `gorm:"size:100"                json:"-"`
	CategoryID       uint     `gorm:"not null;index"          json:"category_id"`
	Category         Category `json:"category"`
}
