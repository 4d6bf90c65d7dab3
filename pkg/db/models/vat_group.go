package models

import (
	"time"

	"github.com/google/uuid"
)

// VatGroup holds a merchant-scoped VAT rate in basis points (700 = 7%).
// Order lines snapshot the rate at creation time, so editing a group never
// changes historical totals.
type VatGroup struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	Code            string    `gorm:"column:code;not null"`
	Name            string    `gorm:"column:name;not null"`
	Description     *string   `gorm:"column:description"`
	RateBasisPoints int       `gorm:"column:rate_basis_points;not null"`
	DisplayOrder    int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
