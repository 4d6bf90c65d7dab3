package menu

import (
	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/publish"
)

// MenuChoiceDTO is one selectable option choice on the storefront.
type MenuChoiceDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PriceDeltaCents int       `json:"price_delta_cents"`
}

// MenuOptionGroupDTO is an option group with its selection bounds.
type MenuOptionGroupDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	MinSelect int             `json:"min_select"`
	MaxSelect int             `json:"max_select"`
	Choices   []MenuChoiceDTO `json:"choices"`
}

// MenuItemDTO is a publishable item as rendered on the storefront.
type MenuItemDTO struct {
	ID           uuid.UUID            `json:"id"`
	CategoryID   uuid.UUID            `json:"category_id"`
	CategoryName string               `json:"category_name"`
	Name         string               `json:"name"`
	Description  *string              `json:"description,omitempty"`
	PriceCents   int                  `json:"price_cents"`
	ImageURL     *string              `json:"image_url,omitempty"`
	OptionGroups []MenuOptionGroupDTO `json:"option_groups"`
}

// StorefrontMenuDTO is the full customer-facing menu of one store.
type StorefrontMenuDTO struct {
	StoreID uuid.UUID     `json:"store_id"`
	Items   []MenuItemDTO `json:"items"`
}

// ItemValidationDTO pairs an item with its publishability result.
type ItemValidationDTO struct {
	ItemID uuid.UUID      `json:"item_id"`
	Result publish.Result `json:"result"`
}

// ValidateItemPayload is an ad-hoc item snapshot submitted for validation
// without persisting anything.
type ValidateItemPayload struct {
	Name           string     `json:"name"`
	CategoryID     *uuid.UUID `json:"category_id"`
	VatGroupID     *uuid.UUID `json:"vat_group_id"`
	PriceCents     int        `json:"price_cents"`
	ImageURL       *string    `json:"image_url"`
	CategoryActive *bool      `json:"category_active"`
}

// CartSelection references one chosen option choice within a cart line.
type CartSelection struct {
	GroupID  uuid.UUID `json:"group_id"`
	ChoiceID uuid.UUID `json:"choice_id"`
}

// CartLine is one requested order line before pricing.
type CartLine struct {
	ItemID     uuid.UUID       `json:"item_id"`
	Quantity   int             `json:"quantity"`
	Selections []CartSelection `json:"selections"`
}

func optionGroupDTOs(groups []models.OptionGroup) []MenuOptionGroupDTO {
	out := make([]MenuOptionGroupDTO, 0, len(groups))
	for _, g := range groups {
		choices := make([]MenuChoiceDTO, 0, len(g.Choices))
		for _, c := range g.Choices {
			choices = append(choices, MenuChoiceDTO{
				ID:              c.ID,
				Name:            c.Name,
				PriceDeltaCents: c.PriceDeltaCents,
			})
		}
		out = append(out, MenuOptionGroupDTO{
			ID:        g.ID,
			Name:      g.Name,
			MinSelect: g.MinSelect,
			MaxSelect: g.MaxSelect,
			Choices:   choices,
		})
	}
	return out
}

func menuItemDTO(item *models.Item) MenuItemDTO {
	dto := MenuItemDTO{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		PriceCents:   item.PriceCents,
		ImageURL:     item.ImageURL,
		OptionGroups: optionGroupDTOs(item.OptionGroups),
	}
	if item.CategoryID != nil {
		dto.CategoryID = *item.CategoryID
	}
	if item.Category != nil {
		dto.CategoryName = item.Category.Name
	}
	return dto
}
