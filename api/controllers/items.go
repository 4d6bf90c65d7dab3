package controllers

import (
	"net/http"

	"github.com/ordena-app/ordena-backend/api/responses"
	"github.com/ordena-app/ordena-backend/api/validators"
	"github.com/ordena-app/ordena-backend/internal/menu"
	"github.com/ordena-app/ordena-backend/pkg/logger"
)

// ItemValidate runs the publishability rules against an ad-hoc item payload
// without touching the database. The result is always 200; the verdict and
// its issues live in the body.
func ItemValidate(menuService menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload menu.ValidateItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menuService.ValidatePayload(payload))
	}
}

// ItemValidateByID validates one persisted item.
func ItemValidateByID(menuService menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := parseUUIDParam(r, "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := menuService.ValidateItem(r.Context(), merchantID, storeID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ItemIssues lists every item of the store that currently fails publishing.
func ItemIssues(menuService menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := parseUUIDParam(r, "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		issues, err := menuService.ListItemIssues(r.Context(), merchantID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, issues)
	}
}
