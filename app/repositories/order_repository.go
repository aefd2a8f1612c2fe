package repositories

import (
	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order together with its line items in one transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// ByBuyer returns the given buyer's orders, newest first, with line items
// and buyer populated.
func (r *OrderRepository) ByBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Products").Preload("Buyer").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// All returns every order for the admin dashboard, newest first.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Products").Preload("Buyer").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Products").Preload("Buyer").First(&order, id).Error
	return order, err
}

// UpdateStatus sets the status of one order and returns the updated record.
func (r *OrderRepository) UpdateStatus(id uint, status string) (models.Order, error) {
	if err := r.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return models.Order{}, err
	}
	return r.FindByID(id)
}
