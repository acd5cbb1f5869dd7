package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/inventory?limit=25", nil)
	got, err := ParseQueryInt(r, "limit", 0, 0, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}

func TestParseQueryIntDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/inventory", nil)
	got, err := ParseQueryInt(r, "limit", 50, 0, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50 {
		t.Fatalf("expected default 50, got %d", got)
	}
}

func TestParseQueryIntRejectsBadValues(t *testing.T) {
	for _, query := range []string{"limit=abc", "limit=-1", "limit=501"} {
		r := httptest.NewRequest("GET", "/inventory?"+query, nil)
		_, err := ParseQueryInt(r, "limit", 0, 0, 500)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("query %q: expected validation error, got %v", query, err)
		}
	}
}
