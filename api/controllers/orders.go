package controllers

import (
	"net/http"

	"github.com/hoangnd-dev/storefront/api/responses"
	"github.com/hoangnd-dev/storefront/api/validators"
	ordersvc "github.com/hoangnd-dev/storefront/internal/orders"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/types"
)

// CreateOrder accepts an order submission and persists it with its item
// snapshots.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.OrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.OrderCreated{
			Message:    "order created successfully",
			OrderID:    order.ID,
			TotalPrice: order.TotalPrice,
		})
	}
}

// ListOrders returns the full order history, newest first.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}
