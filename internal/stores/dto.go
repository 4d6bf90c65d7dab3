package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// StoreDTO exposes safe store data in API responses.
type StoreDTO struct {
	ID         uuid.UUID      `json:"id"`
	MerchantID uuid.UUID      `json:"merchant_id"`
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	Phone      *string        `json:"phone,omitempty"`
	Email      *string        `json:"email,omitempty"`
	Currency   enums.Currency `json:"currency"`
	Timezone   string         `json:"timezone"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// UpdateStoreInput captures the store fields open to mutation.
type UpdateStoreInput struct {
	Name     *string
	Phone    *string
	Email    *string
	Timezone *string
	IsActive *bool
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:         m.ID,
		MerchantID: m.MerchantID,
		Name:       m.Name,
		Slug:       m.Slug,
		Phone:      m.Phone,
		Email:      m.Email,
		Currency:   m.Currency,
		Timezone:   m.Timezone,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
