package models

import "gorm.io/gorm"

// Category groups products. Slug is derived from Name on create/update and
// is what public lookup routes address categories by.
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;index"    json:"slug"`
}
