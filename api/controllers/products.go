package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hoangnd-dev/storefront/api/responses"
	"github.com/hoangnd-dev/storefront/internal/catalog"
	pkgerrors "github.com/hoangnd-dev/storefront/pkg/errors"
	"github.com/hoangnd-dev/storefront/pkg/logger"
)

// ListProducts returns the whole catalog, ordered by category then name.
func ListProducts(store catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products failed"))
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func GetProduct(store catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		product, err := store.Get(r.Context(), id)
		if err != nil {
			if err == catalog.ErrNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product failed"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsByCategory matches the category case-insensitively.
func ProductsByCategory(store catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		products, err := store.ByCategory(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "filtering products failed"))
			return
		}
		responses.WriteSuccess(w, products)
	}
}
