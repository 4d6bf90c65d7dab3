package stats

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// OrderStatsDTO aggregates one store over a time range. Revenue counts
// completed orders only; cancellations are reported separately and never
// contribute to revenue or the average.
type OrderStatsDTO struct {
	OrderCount             int `json:"order_count"`
	RevenueCents           int `json:"revenue_cents"`
	AverageOrderValueCents int `json:"average_order_value_cents"`
	CancelledCount         int `json:"cancelled_count"`
}

// DailyOrderStatsDTO is one local calendar day bucket. Date is formatted
// YYYY-MM-DD in the store's timezone.
type DailyOrderStatsDTO struct {
	Date                   string `json:"date"`
	OrderCount             int    `json:"order_count"`
	RevenueCents           int    `json:"revenue_cents"`
	AverageOrderValueCents int    `json:"average_order_value_cents"`
	CancelledCount         int    `json:"cancelled_count"`
}

// ExportRow is one order line flattened for CSV/reporting export. Order-level
// fields repeat on every row of the same order.
type ExportRow struct {
	OrderID            uuid.UUID         `json:"order_id"`
	OrderCreatedAt     time.Time         `json:"order_created_at"`
	OrderStatus        enums.OrderStatus `json:"order_status"`
	OrderType          enums.OrderType   `json:"order_type"`
	Currency           enums.Currency    `json:"currency"`
	OrderSubtotalCents int               `json:"order_subtotal_cents"`
	OrderVatCents      int               `json:"order_vat_cents"`
	OrderTotalCents    int               `json:"order_total_cents"`
	ItemName           string            `json:"item_name"`
	Quantity           int               `json:"quantity"`
	UnitPriceCents     int               `json:"unit_price_cents"`
	OptionsPriceCents  int               `json:"options_price_cents"`
	LineTotalCents     int               `json:"line_total_cents"`
	VatRateBasisPoints int               `json:"vat_rate_basis_points"`
}
