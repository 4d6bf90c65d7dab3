package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ordena-app/ordena-backend/api/responses"
	"github.com/ordena-app/ordena-backend/internal/menu"
	"github.com/ordena-app/ordena-backend/internal/stores"
	"github.com/ordena-app/ordena-backend/pkg/logger"
)

// StorefrontMenu returns the customer-facing menu of a store. The route is
// public; only active stores with publishable items produce entries.
func StorefrontMenu(menuService menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := parseUUIDParam(r, "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := menuService.StorefrontMenu(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// StoreBySlug resolves an active store by its public slug.
func StoreBySlug(storeService stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		store, err := storeService.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}
