package services_test

import (
	"testing"

	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Gaming Laptop":        "gaming-laptop",
		"Gaming Laptop (15\")": "gaming-laptop-15",
		"  Trimmed  ":          "trimmed",
		"Already-Slugged":      "already-slugged",
		"UPPER case 123":       "upper-case-123",
		"---":                  "",
		"":                     "",
	}
	for in, want := range cases {
		if got := services.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
