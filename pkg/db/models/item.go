package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a menu item. Items referenced by historical orders are never hard
// deleted; merchants deactivate them instead.
type Item struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID      uuid.UUID  `gorm:"column:store_id;type:uuid;not null"`
	CategoryID   *uuid.UUID `gorm:"column:category_id;type:uuid"`
	VatGroupID   *uuid.UUID `gorm:"column:vat_group_id;type:uuid"`
	Name         string     `gorm:"column:name;not null"`
	Description  *string    `gorm:"column:description"`
	PriceCents   int        `gorm:"column:price_cents;not null"`
	ImageURL     *string    `gorm:"column:image_url"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	DisplayOrder int        `gorm:"column:display_order;not null;default:0"`

	Category     *Category     `gorm:"foreignKey:CategoryID"`
	VatGroup     *VatGroup     `gorm:"foreignKey:VatGroupID"`
	OptionGroups []OptionGroup `gorm:"many2many:item_option_groups"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// HasImage reports whether the item has an associated image.
func (i Item) HasImage() bool {
	return i.ImageURL != nil && *i.ImageURL != ""
}
