package models

import (
	"time"

	"github.com/google/uuid"
)

// OptionGroup bundles selectable choices for an item (e.g. "Size", "Extras").
// MinSelect/MaxSelect bound how many choices a customer may pick.
type OptionGroup struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID      `gorm:"column:store_id;type:uuid;not null"`
	Name      string         `gorm:"column:name;not null"`
	MinSelect int            `gorm:"column:min_select;not null;default:0"`
	MaxSelect int            `gorm:"column:max_select;not null;default:1"`
	Choices   []OptionChoice `gorm:"foreignKey:OptionGroupID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// OptionChoice is a single selectable option; the price delta may be negative.
type OptionChoice struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OptionGroupID   uuid.UUID `gorm:"column:option_group_id;type:uuid;not null"`
	Name            string    `gorm:"column:name;not null"`
	PriceDeltaCents int       `gorm:"column:price_delta_cents;not null;default:0"`
	DisplayOrder    int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
