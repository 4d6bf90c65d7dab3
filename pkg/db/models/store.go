package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// Store is a single restaurant location owned by a merchant. The timezone is
// the IANA name used to bucket order statistics by local calendar day.
type Store struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID uuid.UUID      `gorm:"column:merchant_id;type:uuid;not null"`
	Name       string         `gorm:"column:name;not null"`
	Slug       string         `gorm:"column:slug;not null"`
	Phone      *string        `gorm:"column:phone"`
	Email      *string        `gorm:"column:email"`
	Currency   enums.Currency `gorm:"column:currency;type:text;not null;default:'EUR'"`
	Timezone   string         `gorm:"column:timezone;not null;default:'Europe/Berlin'"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
