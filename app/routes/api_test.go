package routes_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/routes"
	"github.com/nikhilmekle/mern-ecommerce-app/internal/gateway"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/auth"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/router"
)

type stubGateway struct{ declined bool }

func (s *stubGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return "stub-token", nil
}

func (s *stubGateway) SubmitSale(ctx context.Context, amount float64, nonce string) (*gateway.SaleResult, error) {
	if s.declined {
		return &gateway.SaleResult{Success: false, Status: "processor_declined"}, nil
	}
	return &gateway.SaleResult{TransactionID: "txn-e2e", Success: true, Status: "submitted_for_settlement", Amount: amount}, nil
}

type fixture struct {
	t  *testing.T
	ts *httptest.Server
	db *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderProduct{},
	))

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{DB: db, Gateway: &stubGateway{}})

	ts := httptest.NewServer(r.Handler())
	t.Cleanup(ts.Close)
	return &fixture{t: t, ts: ts, db: db}
}

// do sends a JSON request and decodes the JSON response body.
func (f *fixture) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	f.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.ts.URL+path, reader)
	require.NoError(f.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := f.ts.Client().Do(req)
	require.NoError(f.t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func (f *fixture) register(email string) {
	f.t.Helper()
	code, _ := f.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name": "Jane", "email": email, "password": "secret123",
		"phone": "555-0100", "address": "1 Main St", "answer": "blue",
	})
	require.Equal(f.t, http.StatusCreated, code)
}

func (f *fixture) login(email, password string) string {
	f.t.Helper()
	code, body := f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": email, "password": password,
	})
	require.Equal(f.t, http.StatusOK, code)
	token, _ := body["token"].(string)
	require.NotEmpty(f.t, token)
	return token
}

// adminToken promotes a fresh user to admin directly in storage and signs in.
func (f *fixture) adminToken() string {
	f.t.Helper()
	f.register("admin@example.com")
	require.NoError(f.t, f.db.Model(&models.User{}).
		Where("email = ?", "admin@example.com").
		Update("role", models.RoleAdmin).Error)
	return f.login("admin@example.com", "secret123")
}

func TestRegisterLoginUserAuth(t *testing.T) {
	f := newFixture(t)
	f.register("jane@example.com")

	// Duplicate registration conflicts.
	code, _ := f.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name": "Jane", "email": "jane@example.com", "password": "secret123",
		"phone": "555-0100", "address": "1 Main St", "answer": "blue",
	})
	require.Equal(t, http.StatusConflict, code)

	token := f.login("jane@example.com", "secret123")

	code, body := f.do(http.MethodGet, "/api/v1/auth/user-auth", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["ok"])

	// Ordinary users fail the admin probe.
	code, _ = f.do(http.MethodGet, "/api/v1/auth/admin-auth", token, nil)
	require.Equal(t, http.StatusUnauthorized, code)

	// No token at all.
	code, _ = f.do(http.MethodGet, "/api/v1/auth/user-auth", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	f.register("jane@example.com")

	code, _ := f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "jane@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "nobody@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestRegisterRedactsCredentials(t *testing.T) {
	f := newFixture(t)
	code, body := f.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name": "Jane", "email": "jane@example.com", "password": "secret123",
		"phone": "555-0100", "address": "1 Main St", "answer": "blue",
	})
	require.Equal(t, http.StatusCreated, code)

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	_, hasPassword := user["password"]
	require.False(t, hasPassword, "response must not leak the password digest")
	_, hasAnswer := user["answer"]
	require.False(t, hasAnswer, "response must not leak the answer digest")
}

func TestCategoryAdminGating(t *testing.T) {
	f := newFixture(t)
	f.register("user@example.com")
	userToken := f.login("user@example.com", "secret123")
	adminToken := f.adminToken()

	// Non-admin cannot create.
	code, _ := f.do(http.MethodPost, "/api/v1/category/create-category", userToken,
		map[string]interface{}{"name": "Electronics"})
	require.Equal(t, http.StatusUnauthorized, code)

	// Admin can.
	code, body := f.do(http.MethodPost, "/api/v1/category/create-category", adminToken,
		map[string]interface{}{"name": "Electronics"})
	require.Equal(t, http.StatusCreated, code)
	category := body["category"].(map[string]interface{})
	require.Equal(t, "electronics", category["slug"])

	// Public reads work without a token.
	code, body = f.do(http.MethodGet, "/api/v1/category/get-category", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["categories"], 1)

	code, _ = f.do(http.MethodGet, "/api/v1/category/single-category/electronics", "", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(http.MethodGet, "/api/v1/category/single-category/missing", "", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func (f *fixture) createProduct(adminToken string, name string, price float64, categoryID uint) uint {
	f.t.Helper()
	code, body := f.do(http.MethodPost, "/api/v1/product/create-product", adminToken,
		map[string]interface{}{
			"name": name, "description": "d", "price": price,
			"quantity": 10, "category_id": categoryID, "shipping": true,
		})
	require.Equal(f.t, http.StatusCreated, code)
	product := body["product"].(map[string]interface{})
	return uint(product["ID"].(float64))
}

func (f *fixture) createCategory(adminToken, name string) uint {
	f.t.Helper()
	code, body := f.do(http.MethodPost, "/api/v1/category/create-category", adminToken,
		map[string]interface{}{"name": name})
	require.Equal(f.t, http.StatusCreated, code)
	category := body["category"].(map[string]interface{})
	return uint(category["ID"].(float64))
}

func TestProductLifecycle(t *testing.T) {
	f := newFixture(t)
	adminToken := f.adminToken()
	catID := f.createCategory(adminToken, "Electronics")
	f.createProduct(adminToken, "Gaming Laptop", 1299.99, catID)

	code, body := f.do(http.MethodGet, "/api/v1/product/get-product", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["products"], 1)

	code, body = f.do(http.MethodGet, "/api/v1/product/get-product/gaming-laptop", "", nil)
	require.Equal(t, http.StatusOK, code)
	product := body["product"].(map[string]interface{})
	require.Equal(t, "Gaming Laptop", product["name"])

	code, _ = f.do(http.MethodGet, "/api/v1/product/search/laptop", "", nil)
	require.Equal(t, http.StatusOK, code)

	code, body = f.do(http.MethodGet, "/api/v1/product/product-count", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, body["total"])
}

func TestProductPhotoTooLargeOverHTTP(t *testing.T) {
	f := newFixture(t)
	adminToken := f.adminToken()
	catID := f.createCategory(adminToken, "Electronics")

	oversized := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("A", models.MaxPhotoBytes+1)))
	code, _ := f.do(http.MethodPost, "/api/v1/product/create-product", adminToken,
		map[string]interface{}{
			"name": "Huge", "description": "d", "price": 1.0,
			"quantity": 1, "category_id": catID, "photo": oversized,
		})
	require.Equal(t, http.StatusUnprocessableEntity, code)

	var n int64
	require.NoError(t, f.db.Model(&models.Product{}).Count(&n).Error)
	require.Zero(t, n, "rejected upload must not write a partial product")
}

func TestCheckoutEndToEnd(t *testing.T) {
	f := newFixture(t)
	adminToken := f.adminToken()
	catID := f.createCategory(adminToken, "Electronics")
	pid := f.createProduct(adminToken, "Headphones", 29.99, catID)

	f.register("buyer@example.com")
	buyerToken := f.login("buyer@example.com", "secret123")

	// Token endpoint needs a signed-in caller.
	code, _ := f.do(http.MethodGet, "/api/v1/product/braintree/token", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	code, body := f.do(http.MethodGet, "/api/v1/product/braintree/token", buyerToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "stub-token", body["clientToken"])

	// Checkout requires sign-in.
	code, _ = f.do(http.MethodPost, "/api/v1/product/braintree/payment", "", map[string]interface{}{
		"nonce": "n", "cart": []map[string]interface{}{{"product_id": pid, "quantity": 2}},
	})
	require.Equal(t, http.StatusUnauthorized, code)

	code, body = f.do(http.MethodPost, "/api/v1/product/braintree/payment", buyerToken, map[string]interface{}{
		"nonce": "n", "cart": []map[string]interface{}{{"product_id": pid, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, true, body["ok"])

	// The order landed with server-side pricing.
	var order models.Order
	require.NoError(t, f.db.Preload("Products").First(&order).Error)
	require.InDelta(t, 59.98, order.Total, 0.001)
	require.Equal(t, models.StatusNotProcessed, order.Status)
	require.Len(t, order.Products, 1)
	require.Equal(t, 2, order.Products[0].Quantity)

	// Buyer sees their order; admin sees all orders.
	code, body = f.do(http.MethodGet, "/api/v1/auth/orders", buyerToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["orders"], 1)

	code, _ = f.do(http.MethodGet, "/api/v1/auth/all-orders", buyerToken, nil)
	require.Equal(t, http.StatusUnauthorized, code, "order dashboard is admin-only")

	code, body = f.do(http.MethodGet, "/api/v1/auth/all-orders", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["orders"], 1)
}

func TestOrderStatusUpdate(t *testing.T) {
	f := newFixture(t)
	adminToken := f.adminToken()

	order := models.Order{BuyerID: 1, Status: models.StatusNotProcessed}
	require.NoError(t, f.db.Create(&order).Error)

	code, body := f.do(http.MethodPut, "/api/v1/auth/order-status/1", adminToken,
		map[string]interface{}{"status": models.StatusShipped})
	require.Equal(t, http.StatusOK, code)
	got := body["order"].(map[string]interface{})
	require.Equal(t, models.StatusShipped, got["status"])

	code, _ = f.do(http.MethodPut, "/api/v1/auth/order-status/999", adminToken,
		map[string]interface{}{"status": models.StatusShipped})
	require.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(http.MethodPut, "/api/v1/auth/order-status/1", adminToken,
		map[string]interface{}{"status": "Teleported"})
	require.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestExpiredTokenRejected(t *testing.T) {
	f := newFixture(t)
	f.register("jane@example.com")

	// A syntactically valid but unsigned-by-us token.
	code, _ := f.do(http.MethodGet, "/api/v1/auth/user-auth", "garbage.token.here", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	// A real token still works with the Bearer prefix.
	token := f.login("jane@example.com", "secret123")
	code, _ = f.do(http.MethodGet, "/api/v1/auth/user-auth", "Bearer "+token, nil)
	require.Equal(t, http.StatusOK, code)

	// Token for a user that no longer exists also clears sign-in (the
	// claims parse) but fails the admin gate.
	ghost, err := auth.GenerateToken(9999)
	require.NoError(t, err)
	code, _ = f.do(http.MethodGet, "/api/v1/auth/admin-auth", ghost, nil)
	require.Equal(t, http.StatusUnauthorized, code)
}
