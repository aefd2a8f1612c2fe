// Package migrations creates and updates the database schema.
package migrations

import (
	"fmt"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/queue"
	"gorm.io/gorm"
)

// Run migrates every model, including the queue's failed_jobs table.
func Run(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderProduct{},
		&queue.FailedJobRecord{},
	)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}
