package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// Order is created atomically with its items and only ever mutated through
// the status transition operations. Version backs the optimistic concurrency
// check that serializes transitions on the same order.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID       uuid.UUID         `gorm:"column:store_id;type:uuid;not null"`
	MerchantID    uuid.UUID         `gorm:"column:merchant_id;type:uuid;not null"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'created'"`
	Type          enums.OrderType   `gorm:"column:type;type:text;not null;default:'dine_in'"`
	Currency      enums.Currency    `gorm:"column:currency;type:text;not null;default:'EUR'"`
	SubtotalCents int               `gorm:"column:subtotal_cents;not null"`
	VatCents      int               `gorm:"column:vat_cents;not null"`
	TotalCents    int               `gorm:"column:total_cents;not null"`
	CancelReason  *string           `gorm:"column:cancel_reason"`

	PaymentRef      *string `gorm:"column:payment_ref"`
	PaymentCaptured bool    `gorm:"column:payment_captured;not null;default:false"`

	Version int `gorm:"column:version;not null;default:0"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
