package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nikhilmekle/mern-ecommerce-app/app/jobs"
	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/internal/gateway"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/metrics"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/queue"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/ws"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// CartItem is one line of the checkout payload. Price is recomputed from
// the catalogue; the client never dictates what it pays.
type CartItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,integer,gte=1"`
}

// CheckoutResult reports the outcome of a successful charge. Queued is true
// when the order write failed and a reconcile job will persist it instead.
type CheckoutResult struct {
	Order  models.Order
	Queued bool
}

// OrderEvent is broadcast on the admin WebSocket feed whenever an order is
// created or its status changes.
type OrderEvent struct {
	Event   string  `json:"event"` // "order.created" | "order.status"
	OrderID uint    `json:"order_id"`
	BuyerID uint    `json:"buyer_id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
	At      string  `json:"at"`
}

// OrderService implements checkout and order management.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	gw       gateway.Gateway
	feed     *ws.Hub // nil disables the live feed
}

func NewOrderService(
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	gw gateway.Gateway,
	feed *ws.Hub,
) *OrderService {
	return &OrderService{orders: orders, products: products, gw: gw, feed: feed}
}

// ClientToken returns a token for the browser payment SDK.
func (s *OrderService) ClientToken(ctx context.Context) (string, error) {
	token, err := s.gw.GenerateClientToken(ctx)
	if err != nil {
		return "", fmt.Errorf("order: client token: %w", err)
	}
	return token, nil
}

// Checkout charges the buyer for the cart and persists the order.
//
// The total is recomputed from current catalogue prices. The charge happens
// first; if it settles but the order insert fails, the order is handed to
// the reconciliation queue instead of being lost — the buyer has paid.
func (s *OrderService) Checkout(ctx context.Context, buyerID uint, cart []CartItem, nonce string) (CheckoutResult, error) {
	if len(cart) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	var total float64
	lines := make([]models.OrderProduct, 0, len(cart))
	for _, item := range cart {
		product, err := s.products.FindByID(item.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckoutResult{}, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
		}
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("order: load product %d: %w", item.ProductID, err)
		}
		total += product.Price * float64(item.Quantity)
		lines = append(lines, models.OrderProduct{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	sale, err := s.gw.SubmitSale(ctx, total, nonce)
	if err != nil {
		metrics.CheckoutTotal.WithLabelValues("gateway_error").Inc()
		return CheckoutResult{}, fmt.Errorf("order: submit sale: %w", err)
	}
	if !sale.Success {
		metrics.CheckoutTotal.WithLabelValues("gateway_declined").Inc()
		return CheckoutResult{}, fmt.Errorf("%w: %s", ErrPaymentDeclined, sale.Message)
	}

	payment, err := json.Marshal(sale)
	if err != nil {
		payment = []byte("{}")
	}

	order := models.Order{
		BuyerID:  buyerID,
		Products: lines,
		Payment:  string(payment),
		Total:    total,
		Status:   models.StatusNotProcessed,
	}

	if err := s.orders.Create(&order); err != nil {
		// Charged but not persisted. Queue it for reconciliation rather
		// than telling a paid customer their order failed.
		metrics.CheckoutTotal.WithLabelValues("persist_failed").Inc()
		logger.WithCtx(ctx).Error("order: persist after charge failed, queueing reconcile",
			"buyer_id", buyerID, "transaction_id", sale.TransactionID, "error", err)

		if qerr := queue.Dispatch(jobs.OrderReconcileJobName, &jobs.OrderReconcileJob{Order: order}); qerr != nil {
			logger.WithCtx(ctx).Error("order: reconcile dispatch failed",
				"buyer_id", buyerID, "transaction_id", sale.TransactionID, "error", qerr)
			return CheckoutResult{}, fmt.Errorf("order: persist: %w", err)
		}
		return CheckoutResult{Order: order, Queued: true}, nil
	}

	metrics.CheckoutTotal.WithLabelValues("charged").Inc()
	s.publish("order.created", order)
	return CheckoutResult{Order: order}, nil
}

// ByBuyer lists the buyer's own orders.
func (s *OrderService) ByBuyer(buyerID uint) ([]models.Order, error) {
	orders, err := s.orders.ByBuyer(buyerID)
	if err != nil {
		return nil, fmt.Errorf("order: list by buyer: %w", err)
	}
	return orders, nil
}

// All lists every order for the admin dashboard.
func (s *OrderService) All() ([]models.Order, error) {
	orders, err := s.orders.All()
	if err != nil {
		return nil, fmt.Errorf("order: list: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status and broadcasts the change.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}

	if _, err := s.orders.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	} else if err != nil {
		return models.Order{}, fmt.Errorf("order: find: %w", err)
	}

	order, err := s.orders.UpdateStatus(id, status)
	if err != nil {
		return models.Order{}, fmt.Errorf("order: update status: %w", err)
	}
	s.publish("order.status", order)
	return order, nil
}

func (s *OrderService) publish(event string, order models.Order) {
	if s.feed == nil {
		return
	}
	s.feed.BroadcastJSON(OrderEvent{
		Event:   event,
		OrderID: order.ID,
		BuyerID: order.BuyerID,
		Status:  order.Status,
		Total:   order.Total,
		At:      time.Now().UTC().Format(time.RFC3339),
	})
}
