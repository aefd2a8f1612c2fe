package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikhilmekle/mern-ecommerce-app/pkg/router"
)

func handler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/products", "product.all", handler("ok"))
	r.Get("/products/{slug}", "product.single", handler("ok"))

	if path, ok := r.Path("product.all"); !ok || path != "/products" {
		t.Errorf("expected /products, got %q (ok=%v)", path, ok)
	}

	url, err := r.URL("product.single", map[string]string{"slug": "laptop"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/products/laptop" {
		t.Errorf("expected /products/laptop, got %q", url)
	}

	if _, err := r.URL("product.single", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("no.such.route", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api/v1", mw("group"))
	auth := api.Group("/auth")
	auth.Post("/login", "auth.login", handler("login"), mw("route"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "login" {
		t.Errorf("expected body 'login', got %q", rec.Body.String())
	}
	if len(order) != 2 || order[0] != "group" || order[1] != "route" {
		t.Errorf("expected group middleware before route middleware, got %v", order)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Post("/only-post", "test.post", handler("ok"))

	req := httptest.NewRequest(http.MethodGet, "/only-post", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/b", "b", handler("ok"))
	r.Get("/a", "a", handler("ok"))

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(infos))
	}
	if infos[0].Path != "/a" || infos[1].Path != "/b" {
		t.Errorf("expected routes sorted by path, got %+v", infos)
	}
}
