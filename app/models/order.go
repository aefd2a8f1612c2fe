package models

import "gorm.io/gorm"

// Order statuses. New orders start at StatusNotProcessed; admins move them
// through the pipeline from the dashboard.
const (
	StatusNotProcessed = "Not Processed"
	StatusProcessing   = "Processing"
	StatusShipped      = "Shipped"
	StatusDelivered    = "Delivered"
	StatusCancelled    = "Cancelled"
)

// OrderStatuses lists every status an admin may set.
var OrderStatuses = []string{
	StatusNotProcessed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ValidStatus reports whether s is one of the allowed order statuses.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is a purchase. Products are snapshot rows so later catalogue edits
// don't rewrite order history. Payment holds the raw gateway result JSON.
type Order struct {
	gorm.Model
	BuyerID  uint           `gorm:"not null;index"                   json:"buyer_id"`
	Buyer    User           `json:"buyer"`
	Products []OrderProduct `json:"products"`
	Payment  string         `gorm:"type:text"                        json:"payment"`
	Total    float64        `gorm:"not null;default:0"               json:"total"`
	Status   string         `gorm:"size:50;default:'Not Processed'"  json:"status"`
}

// OrderProduct is a line item: the product's name and price at purchase
// time, frozen onto the order.
type OrderProduct struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index"     json:"order_id"`
	ProductID uint    `gorm:"not null;index"     json:"product_id"`
	Name      string  `gorm:"size:255;not null"  json:"name"`
	Price     float64 `gorm:"not null;default:0" json:"price"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
}
