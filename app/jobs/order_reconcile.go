// Package jobs defines background jobs processed by pkg/queue.
package jobs

import (
	"errors"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/queue"
)

// OrderReconcileJobName is the queue registry name for OrderReconcileJob.
const OrderReconcileJobName = "OrderReconcileJob"

var orderRepo *repositories.OrderRepository

// Configure wires the repositories jobs need and registers every job type.
// Call once at boot, after the database connection is established.
func Configure(orders *repositories.OrderRepository) {
	orderRepo = orders
	queue.Register(OrderReconcileJobName, func() queue.Job { return &OrderReconcileJob{} })
}

// OrderReconcileJob persists an order whose payment settled but whose
// synchronous database write failed. The buyer has been charged, so this
// must eventually succeed; exhausted retries land in failed_jobs where an
// operator resolves them by hand.
type OrderReconcileJob struct {
	Order models.Order `json:"order"`
}

func (j *OrderReconcileJob) Handle() error {
	if orderRepo == nil {
		return errors.New("jobs: order repository not configured")
	}
	if err := orderRepo.Create(&j.Order); err != nil {
		return err
	}
	logger.Info("jobs: reconciled order",
		"order_id", j.Order.ID, "buyer_id", j.Order.BuyerID, "total", j.Order.Total)
	return nil
}
