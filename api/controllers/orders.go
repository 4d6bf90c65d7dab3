package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/api/responses"
	"github.com/ordena-app/ordena-backend/api/validators"
	"github.com/ordena-app/ordena-backend/internal/menu"
	"github.com/ordena-app/ordena-backend/internal/orders"
	"github.com/ordena-app/ordena-backend/pkg/enums"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
	"github.com/ordena-app/ordena-backend/pkg/logger"
)

type createOrderRequest struct {
	StoreID uuid.UUID       `json:"store_id" validate:"required"`
	Type    string          `json:"type" validate:"required"`
	Lines   []menu.CartLine `json:"lines" validate:"required,min=1"`
}

// OrderCreate prices the submitted cart and persists the order atomically.
func OrderCreate(ordersService orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderType, err := enums.ParseOrderType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order type"))
			return
		}

		order, err := ordersService.Create(r.Context(), orders.CreateOrderInput{
			MerchantID: merchantID,
			StoreID:    req.StoreID,
			Type:       orderType,
			Lines:      req.Lines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderDetail returns one owned order with its lines.
func OrderDetail(ordersService orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := ordersService.GetByID(r.Context(), merchantID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type updateStatusRequest struct {
	Target string `json:"target" validate:"required"`
}

// OrderUpdateStatus performs one forward lifecycle transition.
func OrderUpdateStatus(ordersService orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := enums.ParseOrderStatus(req.Target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target status"))
			return
		}

		order, err := ordersService.UpdateStatus(r.Context(), orders.UpdateStatusInput{
			MerchantID: merchantID,
			OrderID:    orderID,
			Target:     target,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type cancelOrderRequest struct {
	Reason *string `json:"reason"`
}

// OrderCancel cancels an order from any non-terminal status, refunding the
// captured payment when there is one.
func OrderCancel(ordersService orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req cancelOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Reason != nil {
			trimmed := validators.SanitizeString(*req.Reason, 500)
			req.Reason = &trimmed
		}

		order, err := ordersService.Cancel(r.Context(), orders.CancelInput{
			MerchantID: merchantID,
			OrderID:    orderID,
			Reason:     req.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// KitchenQueue lists the store's in-flight orders oldest first.
func KitchenQueue(ordersService orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		queue, err := ordersService.KitchenQueue(r.Context(), merchantID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, queue)
	}
}
