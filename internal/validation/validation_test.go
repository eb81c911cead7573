package validation

import (
	"strings"
	"testing"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
)

type sample struct {
	Name  string  `json:"name" validate:"required,min=2,max=5"`
	Email string  `json:"email" validate:"required,email"`
	Image *string `json:"cover_image" validate:"omitempty,httpurl"`
	Kind  string  `json:"kind,omitempty" validate:"omitempty,oneof=web mobile"`
}

func strPtr(s string) *string { return &s }

func TestStructValid(t *testing.T) {
	v := New()
	ok := sample{Name: "Ana", Email: "ana@example.com", Image: strPtr("https://img.example/x.png"), Kind: "web"}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := v.Struct(sample{Name: "Bo", Email: "bo@example.com"}); err != nil {
		t.Fatalf("expected optional fields to be skipped, got %v", err)
	}
}

func TestStructInvalid(t *testing.T) {
	v := New()
	err := v.Struct(sample{Name: "A", Email: "nope", Image: strPtr("ftp://x"), Kind: "fax"})
	if !appErrors.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}

	msg := appErrors.MessageOf(err)
	for _, want := range []string{
		"name must be at least 2 characters",
		"email must be a valid email",
		"cover_image must start with http:// or https://",
		"kind must be one of [web mobile]",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestStructRequired(t *testing.T) {
	err := New().Struct(sample{})
	msg := appErrors.MessageOf(err)
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "email is required") {
		t.Errorf("unexpected message %q", msg)
	}
}
