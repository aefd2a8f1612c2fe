package controllers

import (
	"errors"
	"net/http"

	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/bind"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/middleware"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/response"
)

// OrderController handles checkout and order management.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Token returns a client token for the browser payment SDK.
func (c *OrderController) Token(w http.ResponseWriter, r *http.Request) {
	token, err := c.orders.ClientToken(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("client token failed", "error", err)
		response.ServerError(w, "Payment gateway unavailable")
		return
	}

	response.OK(w, "Client token", response.Payload{"clientToken": token})
}

type checkoutInput struct {
	Cart  []services.CartItem `json:"cart"`
	Nonce string              `json:"nonce" validate:"required"`
}

// Checkout charges the signed-in buyer for the cart. The total is computed
// server-side from catalogue prices.
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized Access")
		return
	}

	var in checkoutInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	for _, item := range in.Cart {
		if item.ProductID == 0 || item.Quantity < 1 {
			response.ValidationError(w, map[string]string{"cart": "Each cart item needs a product_id and a quantity of at least 1."})
			return
		}
	}

	result, err := c.orders.Checkout(r.Context(), buyerID, in.Cart, in.Nonce)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		response.ValidationError(w, map[string]string{"cart": "Cart is empty."})
		return
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w, "Product not found")
		return
	case errors.Is(err, services.ErrPaymentDeclined):
		response.Fail(w, http.StatusPaymentRequired, "Payment declined")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("checkout failed", "error", err)
		response.Fail(w, http.StatusBadGateway, "Payment failed")
		return
	}

	response.Success(w, http.StatusCreated, "Payment completed successfully", response.Payload{
		"ok":     true,
		"order":  result.Order,
		"queued": result.Queued,
	})
}

// MyOrders lists the signed-in buyer's orders.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized Access")
		return
	}

	orders, err := c.orders.ByBuyer(buyerID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order list failed", "error", err)
		response.ServerError(w, "Error while getting orders")
		return
	}

	response.OK(w, "Your orders", response.Payload{"orders": orders})
}

// AllOrders lists every order for the admin dashboard.
func (c *OrderController) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("order list failed", "error", err)
		response.ServerError(w, "Error while getting orders")
		return
	}

	response.OK(w, "All orders", response.Payload{"orders": orders})
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order to a new status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "orderId")
	if !ok {
		response.NotFound(w, "Order not found")
		return
	}

	var in statusInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, uerr := c.orders.UpdateStatus(id, in.Status)
	switch {
	case errors.Is(uerr, services.ErrInvalidStatus):
		response.ValidationError(w, map[string]string{"status": "Status must be one of the known order statuses."})
		return
	case errors.Is(uerr, services.ErrOrderNotFound):
		response.NotFound(w, "Order not found")
		return
	case uerr != nil:
		logger.WithCtx(r.Context()).Error("order status update failed", "error", uerr)
		response.ServerError(w, "Error while updating order")
		return
	}

	response.OK(w, "Order status updated", response.Payload{"order": order})
}
