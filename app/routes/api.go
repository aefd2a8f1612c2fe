// Package routes wires controllers onto the router.
package routes

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikhilmekle/mern-ecommerce-app/app/controllers"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
	"github.com/nikhilmekle/mern-ecommerce-app/config"
	"github.com/nikhilmekle/mern-ecommerce-app/internal/gateway"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/metrics"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/middleware"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/router"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/ws"
	"gorm.io/gorm"
)

// Deps carries everything the route table needs. OrderFeed may be nil to
// disable the admin WebSocket feed (tests do this).
type Deps struct {
	DB        *gorm.DB
	Gateway   gateway.Gateway
	OrderFeed *ws.Hub
}

// RegisterAPI mounts every API route under /api/v1, plus /metrics, the
// admin order feed, and the SPA fallback.
func RegisterAPI(r *router.Router, deps Deps) {
	users := repositories.NewUserRepository(deps.DB)
	categories := repositories.NewCategoryRepository(deps.DB)
	products := repositories.NewProductRepository(deps.DB)
	orders := repositories.NewOrderRepository(deps.DB)

	authService := services.NewAuthService(users)
	categoryService := services.NewCategoryService(categories)
	productService := services.NewProductService(products)
	orderService := services.NewOrderService(orders, products, deps.Gateway, deps.OrderFeed)

	authController := controllers.NewAuthController(authService)
	categoryController := controllers.NewCategoryController(categoryService)
	productController := controllers.NewProductController(productService, categoryService)
	orderController := controllers.NewOrderController(orderService)

	// Admin checks re-read the role from the database on every request.
	roleLookup := func(_ context.Context, userID uint) (int, error) {
		return users.Role(userID)
	}
	signedIn := middleware.RequireSignIn
	admin := middleware.RequireAdmin(roleLookup)

	api := r.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", authController.Register)
	auth.Post("/login", "auth.login", authController.Login)
	auth.Post("/forgot-password", "auth.forgot", authController.ForgotPassword)
	auth.Get("/test", "auth.test", authController.Test, signedIn, admin)
	auth.Get("/user-auth", "auth.user", authController.Check, signedIn)
	auth.Get("/admin-auth", "auth.admin", authController.Check, signedIn, admin)
	auth.Put("/profile", "auth.profile", authController.UpdateProfile, signedIn)
	auth.Get("/orders", "auth.orders", orderController.MyOrders, signedIn)
	auth.Get("/all-orders", "auth.orders.all", orderController.AllOrders, signedIn, admin)
	auth.Put("/order-status/{orderId}", "auth.orders.status", orderController.UpdateStatus, signedIn, admin)

	// Categories
	category := api.Group("/category")
	category.Post("/create-category", "category.create", categoryController.Create, signedIn, admin)
	category.Put("/update-category/{id}", "category.update", categoryController.Update, signedIn, admin)
	category.Delete("/delete-category/{id}", "category.delete", categoryController.Delete, signedIn, admin)
	category.Get("/get-category", "category.all", categoryController.All)
	category.Get("/single-category/{slug}", "category.single", categoryController.BySlug)

	// Products
	product := api.Group("/product")
	product.Post("/create-product", "product.create", productController.Create, signedIn, admin)
	product.Put("/update-product/{pid}", "product.update", productController.Update, signedIn, admin)
	product.Delete("/delete-product/{pid}", "product.delete", productController.Delete, signedIn, admin)
	product.Get("/get-product", "product.all", productController.All)
	product.Get("/get-product/{slug}", "product.single", productController.BySlug)
	product.Get("/product-photo/{pid}", "product.photo", productController.Photo)
	product.Post("/product-filters", "product.filters", productController.Filter)
	product.Get("/product-count", "product.count", productController.Count)
	product.Get("/product-list/{page}", "product.page", productController.Page)
	product.Get("/search/{keyword}", "product.search", productController.Search)
	product.Get("/related-product/{pid}/{cid}", "product.related", productController.Related)
	product.Get("/product-category/{slug}", "product.category", productController.ByCategory)

	// Payments
	product.Get("/braintree/token", "payment.token", orderController.Token, signedIn)
	product.Post("/braintree/payment", "payment.checkout", orderController.Checkout, signedIn)

	// Observability
	r.Handle("/metrics", metrics.Handler())

	// Live order feed for admin dashboards.
	if deps.OrderFeed != nil {
		feed := deps.OrderFeed
		r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, feed)
		}, signedIn, admin)
	}

	registerSPA(r)
}

// registerSPA serves the built frontend. Unknown non-API paths fall back to
// index.html so client-side routing works on refresh.
func registerSPA(r *router.Router) {
	dir := config.StaticDir()
	if _, err := os.Stat(dir); err != nil {
		return // no frontend build present (API-only deployments, tests)
	}

	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api/") {
			http.NotFound(w, req)
			return
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.Clean(req.URL.Path))); err == nil && req.URL.Path != "/" {
			fs.ServeHTTP(w, req)
			return
		}
		http.ServeFile(w, req, index)
	})
}
