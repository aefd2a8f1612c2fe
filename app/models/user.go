package models

import "gorm.io/gorm"

// Roles. Admin-only routes check Role == RoleAdmin against the database on
// every request, so a revoked admin loses access immediately even with a
// still-valid token.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User is the primary user model. Password and Answer hold bcrypt digests
// and are never serialised.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"            json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"            json:"-"`
	Phone    string `gorm:"size:50;not null"             json:"phone"`
	Address  string `gorm:"size:500;not null"            json:"address"`
	Answer   string `gorm:"size:255;not null"            json:"-"` // security answer digest
	Role     int    `gorm:"not null;default:0"           json:"role"`
}
