package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/internal/menu"
	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// OrderItemOptionDTO is one snapshotted choice on an order line.
type OrderItemOptionDTO struct {
	GroupID         uuid.UUID `json:"group_id"`
	ChoiceID        uuid.UUID `json:"choice_id"`
	Name            string    `json:"name"`
	PriceDeltaCents int       `json:"price_delta_cents"`
}

// OrderItemDTO is one priced line as stored at creation time.
type OrderItemDTO struct {
	ID                 uuid.UUID            `json:"id"`
	ItemID             *uuid.UUID           `json:"item_id,omitempty"`
	Name               string               `json:"name"`
	Quantity           int                  `json:"quantity"`
	UnitPriceCents     int                  `json:"unit_price_cents"`
	OptionsPriceCents  int                  `json:"options_price_cents"`
	LineTotalCents     int                  `json:"line_total_cents"`
	VatRateBasisPoints int                  `json:"vat_rate_basis_points"`
	Options            []OrderItemOptionDTO `json:"options"`
}

// OrderDTO exposes an order in API responses.
type OrderDTO struct {
	ID            uuid.UUID         `json:"id"`
	StoreID       uuid.UUID         `json:"store_id"`
	Status        enums.OrderStatus `json:"status"`
	Type          enums.OrderType   `json:"type"`
	Currency      enums.Currency    `json:"currency"`
	SubtotalCents int               `json:"subtotal_cents"`
	VatCents      int               `json:"vat_cents"`
	TotalCents    int               `json:"total_cents"`
	CancelReason  *string           `json:"cancel_reason,omitempty"`
	Items         []OrderItemDTO    `json:"items"`
	ConfirmedAt   *time.Time        `json:"confirmed_at,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateOrderInput carries a new order request before pricing.
type CreateOrderInput struct {
	MerchantID uuid.UUID
	StoreID    uuid.UUID
	Type       enums.OrderType
	Lines      []menu.CartLine
}

// UpdateStatusInput requests one forward transition.
type UpdateStatusInput struct {
	MerchantID uuid.UUID
	OrderID    uuid.UUID
	Target     enums.OrderStatus
}

// CancelInput requests cancellation with an optional reason.
type CancelInput struct {
	MerchantID uuid.UUID
	OrderID    uuid.UUID
	Reason     *string
}

// FromModel maps a persisted order into its DTO.
func FromModel(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		options := make([]OrderItemOptionDTO, 0, len(item.Options))
		for _, opt := range item.Options {
			options = append(options, OrderItemOptionDTO{
				GroupID:         opt.OptionGroupID,
				ChoiceID:        opt.ChoiceID,
				Name:            opt.Name,
				PriceDeltaCents: opt.PriceDeltaCents,
			})
		}
		items = append(items, OrderItemDTO{
			ID:                 item.ID,
			ItemID:             item.ItemID,
			Name:               item.Name,
			Quantity:           item.Quantity,
			UnitPriceCents:     item.UnitPriceCents,
			OptionsPriceCents:  item.OptionsPriceCents,
			LineTotalCents:     item.LineTotalCents,
			VatRateBasisPoints: item.VatRateBasisPoints,
			Options:            options,
		})
	}
	return &OrderDTO{
		ID:            m.ID,
		StoreID:       m.StoreID,
		Status:        m.Status,
		Type:          m.Type,
		Currency:      m.Currency,
		SubtotalCents: m.SubtotalCents,
		VatCents:      m.VatCents,
		TotalCents:    m.TotalCents,
		CancelReason:  m.CancelReason,
		Items:         items,
		ConfirmedAt:   m.ConfirmedAt,
		CompletedAt:   m.CompletedAt,
		CancelledAt:   m.CancelledAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
