package validate_test

import (
	"testing"

	"github.com/nikhilmekle/mern-ecommerce-app/pkg/validate"
)

type registerInput struct {
	Name     string `json:"name"     validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"nullable,max=20"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret123",
		Phone:    "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestMinLength(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,min=6"`
	}
	if errs := validate.Struct(in{Password: "short"}); !validate.HasErrors(errs) {
		t.Error("expected 5-char password to fail min=6")
	}
	if errs := validate.Struct(in{Password: "longenough"}); validate.HasErrors(errs) {
		t.Errorf("expected password to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,numeric,gte=0"`
	}
	if errs := validate.Struct(in{Price: -1}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail gte=0")
	}
	if errs := validate.Struct(in{Price: 9.99}); validate.HasErrors(errs) {
		t.Errorf("expected price 9.99 to pass, got: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Photo string `json:"photo" validate:"nullable,min=10"`
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable field to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Photo: "short"}); !validate.HasErrors(errs) {
		t.Error("expected non-empty nullable field to still hit min=10")
	}
}

func TestPointerInput(t *testing.T) {
	errs := validate.Struct(&registerInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected pointer input to validate, got: %v", errs)
	}
}
