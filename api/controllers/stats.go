package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ordena-app/ordena-backend/api/responses"
	"github.com/ordena-app/ordena-backend/api/validators"
	"github.com/ordena-app/ordena-backend/internal/stats"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
	"github.com/ordena-app/ordena-backend/pkg/logger"
)

// StoreStats aggregates one store over the requested range.
func StoreStats(statsService stats.Service, logg *logger.Logger) http.HandlerFunc {
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
		from, to, err := validators.ParseQueryTimeRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := statsService.GetOrderStats(r.Context(), merchantID, storeID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// StoreDailyStats buckets the range per local calendar day of the store.
func StoreDailyStats(statsService stats.Service, logg *logger.Logger) http.HandlerFunc {
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
		from, to, err := validators.ParseQueryTimeRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := statsService.GetDailyOrderStats(r.Context(), merchantID, storeID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func exportBound(t time.Time) string {
	if t.IsZero() {
		return "all"
	}
	return t.UTC().Format("20060102")
}

var exportHeader = []string{
	"order_id", "order_created_at", "order_status", "order_type", "currency",
	"order_subtotal_cents", "order_vat_cents", "order_total_cents",
	"item_name", "quantity", "unit_price_cents", "options_price_cents",
	"line_total_cents", "vat_rate_basis_points",
}

// OrdersExport streams the range as CSV, one row per order line.
func OrdersExport(statsService stats.Service, logg *logger.Logger) http.HandlerFunc {
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
		from, to, err := validators.ParseQueryTimeRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := statsService.GetOrdersForExport(r.Context(), merchantID, storeID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("orders_%s_%s.csv", exportBound(from), exportBound(to))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		writer := csv.NewWriter(w)
		if err := writer.Write(exportHeader); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export header"))
			return
		}
		for _, row := range rows {
			record := []string{
				row.OrderID.String(),
				row.OrderCreatedAt.UTC().Format(time.RFC3339),
				string(row.OrderStatus),
				string(row.OrderType),
				string(row.Currency),
				strconv.Itoa(row.OrderSubtotalCents),
				strconv.Itoa(row.OrderVatCents),
				strconv.Itoa(row.OrderTotalCents),
				row.ItemName,
				strconv.Itoa(row.Quantity),
				strconv.Itoa(row.UnitPriceCents),
				strconv.Itoa(row.OptionsPriceCents),
				strconv.Itoa(row.LineTotalCents),
				strconv.Itoa(row.VatRateBasisPoints),
			}
			if err := writer.Write(record); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "write export row", err)
				}
				return
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil && logg != nil {
			logg.Error(r.Context(), "flush export", err)
		}
	}
}
