package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/selimkhoury/storefront-backend/api/middleware"
	"github.com/selimkhoury/storefront-backend/api/responses"
	"github.com/selimkhoury/storefront-backend/api/validators"
	"github.com/selimkhoury/storefront-backend/internal/sales"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
	"github.com/selimkhoury/storefront-backend/pkg/logger"
)

// saleRequest mirrors the wire shape of a purchase. The sales service owns
// the field checks so its error messages stay authoritative.
type saleRequest struct {
	CustomerUsername string `json:"CustomerUsername"`
	ItemName         string `json:"ItemName"`
	Quantity         int    `json:"Quantity"`
}

// SalesListGoods returns name and price for every in-stock good.
func SalesListGoods(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goods, err := svc.ListGoods(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, goods)
	}
}

// SalesGoodDetails returns the full record for one good.
func SalesGoodDetails(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		good, err := svc.GoodDetails(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, good)
	}
}

// SalesExecute runs the atomic purchase: stock and wallet move together or
// not at all.
func SalesExecute(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var body saleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.ExecuteSale(r.Context(), sales.SaleInput{
			CustomerUsername: body.CustomerUsername,
			ItemName:         body.ItemName,
			Quantity:         body.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// SalesPurchaseHistory lists the authenticated customer's purchases,
// newest first.
func SalesPurchaseHistory(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := uuid.Parse(middleware.CustomerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		history, err := svc.PurchaseHistory(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
