// Package seeders populates a fresh database with an admin account and a
// starter catalogue.
package seeders

import (
	"errors"
	"fmt"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/config"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/auth"
	"gorm.io/gorm"
)

// RunAll runs every seeder. Seeders are idempotent: existing rows are left
// alone.
func RunAll(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedCatalog(db)
}

func seedAdmin(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@example.com")

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seeders: check admin: %w", err)
	}

	password, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "changeme"))
	if err != nil {
		return fmt.Errorf("seeders: hash password: %w", err)
	}
	answer, err := auth.HashPassword(config.Get("ADMIN_ANSWER", "changeme"))
	if err != nil {
		return fmt.Errorf("seeders: hash answer: %w", err)
	}

	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: password,
		Phone:    "0000000000",
		Address:  "Head Office",
		Answer:   answer,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seeders: create admin: %w", err)
	}
	return nil
}

func seedCatalog(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Category{}).Count(&n).Error; err != nil {
		return fmt.Errorf("seeders: count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Electronics", Slug: "electronics"},
		{Name: "Books", Slug: "books"},
		{Name: "Clothing", Slug: "clothing"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seeders: create categories: %w", err)
	}

	products := []models.Product{
		{
			Name: "Wireless Headphones", Slug: "wireless-headphones",
			Description: "Over-ear wireless headphones with noise cancellation.",
			Price:       99.99, Quantity: 50, Shipping: true,
			CategoryID: categories[0].ID,
		},
		{
			Name: "The Go Programming Language", Slug: "the-go-programming-language",
			Description: "The definitive reference by Donovan and Kernighan.",
			Price:       39.95, Quantity: 120, Shipping: true,
			CategoryID: categories[1].ID,
		},
		{
			Name: "Plain Cotton T-Shirt", Slug: "plain-cotton-t-shirt",
			Description: "Unisex crew-neck t-shirt, 100% cotton.",
			Price:       12.50, Quantity: 300, Shipping: true,
			CategoryID: categories[2].ID,
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seeders: create products: %w", err)
	}
	return nil
}
