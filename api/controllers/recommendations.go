package controllers

import (
	"net/http"

	"github.com/selimkhoury/storefront-backend/api/responses"
	"github.com/selimkhoury/storefront-backend/internal/recommendations"
	"github.com/selimkhoury/storefront-backend/pkg/logger"
)

// Recommend ranks goods the customer's purchase peers bought.
func Recommend(svc recommendations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := uuidParam(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Recommend(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
