package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/selimkhoury/storefront-backend/api/responses"
	"github.com/selimkhoury/storefront-backend/api/validators"
	"github.com/selimkhoury/storefront-backend/internal/inventory"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
	"github.com/selimkhoury/storefront-backend/pkg/logger"
)

type addItemRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Description  *string         `json:"description"`
	StockCount   int             `json:"stock_count"`
}

type deductStockRequest struct {
	Quantity int `json:"quantity"`
}

// InventoryAdd stocks a new good.
func InventoryAdd(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Add(r.Context(), inventory.AddItemInput{
			Name:         body.Name,
			Category:     body.Category,
			PricePerItem: body.PricePerItem,
			Description:  body.Description,
			StockCount:   body.StockCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// InventoryList returns the full catalog, sold out goods included. An
// optional limit query parameter caps the result.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		responses.WriteSuccess(w, items)
	}
}

// InventoryGet resolves a single good by id.
func InventoryGet(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryUpdate applies the allow-listed item fields.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body inventory.UpdateItemDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Update(r.Context(), id, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// InventoryDeductStock removes stock outside the sale flow, for shrinkage
// or manual corrections.
func InventoryDeductStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body deductStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeductStock(r.Context(), id, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deducted"})
	}
}
