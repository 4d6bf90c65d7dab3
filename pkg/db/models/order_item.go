package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots one priced line at order creation time. Name, unit
// price, option deltas and VAT rate are frozen here so later menu edits never
// drift historical totals.
type OrderItem struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	ItemID             *uuid.UUID `gorm:"column:item_id;type:uuid"`
	Name               string     `gorm:"column:name;not null"`
	Quantity           int        `gorm:"column:quantity;not null"`
	UnitPriceCents     int        `gorm:"column:unit_price_cents;not null"`
	OptionsPriceCents  int        `gorm:"column:options_price_cents;not null;default:0"`
	LineTotalCents     int        `gorm:"column:line_total_cents;not null"`
	VatRateBasisPoints int        `gorm:"column:vat_rate_basis_points;not null"`

	Options []OrderItemOption `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItemOption records one selected choice with its snapshotted delta.
type OrderItemOption struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID     uuid.UUID `gorm:"column:order_item_id;type:uuid;not null"`
	OptionGroupID   uuid.UUID `gorm:"column:option_group_id;type:uuid;not null"`
	ChoiceID        uuid.UUID `gorm:"column:choice_id;type:uuid;not null"`
	Name            string    `gorm:"column:name;not null"`
	PriceDeltaCents int       `gorm:"column:price_delta_cents;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
