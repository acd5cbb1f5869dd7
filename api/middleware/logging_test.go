package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/selimkhoury/storefront-backend/pkg/logger"
)

func TestLoggingCapturesStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goods", nil))

	if w.Code != http.StatusTeapot {
		t.Fatalf("expected downstream status to pass through, got %d", w.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"status":418`)) {
		t.Fatalf("expected status field in log entry; entries=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("request.complete")) {
		t.Fatalf("expected completion entry; entries=%s", buf.String())
	}
}

func TestLoggingDefaultsToOK(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Write nothing; net/http treats this as an implicit 200.
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/goods", nil))

	if !bytes.Contains(buf.Bytes(), []byte(`"status":200`)) {
		t.Fatalf("expected implicit 200 in log entry; entries=%s", buf.String())
	}
}
