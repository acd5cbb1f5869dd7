package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/selimkhoury/storefront-backend/internal/sales"
)

type stubSalesService struct {
	lastInput sales.SaleInput
}

func (s *stubSalesService) ExecuteSale(_ context.Context, input sales.SaleInput) (*sales.SaleDTO, error) {
	s.lastInput = input
	return &sales.SaleDTO{}, nil
}

func (s *stubSalesService) ListGoods(context.Context) ([]sales.GoodSummaryDTO, error) {
	return nil, nil
}

func (s *stubSalesService) GoodDetails(context.Context, uuid.UUID) (*sales.GoodDetailsDTO, error) {
	return nil, nil
}

func (s *stubSalesService) PurchaseHistory(context.Context, uuid.UUID) ([]sales.SaleDTO, error) {
	return nil, nil
}

func TestSalesExecuteDecodesWireBody(t *testing.T) {
	svc := &stubSalesService{}
	handler := SalesExecute(svc, nil)

	body := `{"CustomerUsername":"marwan22","ItemName":"walnut shelf","Quantity":3}`
	req := httptest.NewRequest(http.MethodPost, "/sales/sale", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	if svc.lastInput.CustomerUsername != "marwan22" {
		t.Fatalf("username not decoded, got %q", svc.lastInput.CustomerUsername)
	}
	if svc.lastInput.ItemName != "walnut shelf" {
		t.Fatalf("item name not decoded, got %q", svc.lastInput.ItemName)
	}
	if svc.lastInput.Quantity != 3 {
		t.Fatalf("quantity not decoded, got %d", svc.lastInput.Quantity)
	}
}

func TestSalesExecuteRejectsUnknownFields(t *testing.T) {
	svc := &stubSalesService{}
	handler := SalesExecute(svc, nil)

	body := `{"CustomerUsername":"marwan22","ItemName":"walnut shelf","Quantity":1,"Bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/sales/sale", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}
