package auth_test

import (
	"testing"

	"github.com/nikhilmekle/mern-ecommerce-app/pkg/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := auth.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	if _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("expected garbage token to fail validation")
	}
}

func TestValidateTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := auth.ValidateToken(token + "x"); err == nil {
		t.Error("expected tampered token to fail validation")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Error("hash must not equal the plaintext")
	}
	if !auth.CheckPassword(hash, "secret123") {
		t.Error("expected correct password to verify")
	}
	if auth.CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}
