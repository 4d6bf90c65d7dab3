package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
	"github.com/ordena-app/ordena-backend/pkg/pricing"
	"github.com/ordena-app/ordena-backend/pkg/publish"
)

type menuRepository interface {
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListItemsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Item, error)
	ListActiveItemsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Item, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes menu reads: publishability checks, the storefront menu and
// the pricing snapshots the order flow consumes.
type Service interface {
	ValidateItem(ctx context.Context, merchantID, storeID, itemID uuid.UUID) (*ItemValidationDTO, error)
	ValidatePayload(payload ValidateItemPayload) publish.Result
	ListItemIssues(ctx context.Context, merchantID, storeID uuid.UUID) ([]ItemValidationDTO, error)
	StorefrontMenu(ctx context.Context, storeID uuid.UUID) (*StorefrontMenuDTO, error)
	ResolveLines(ctx context.Context, storeID uuid.UUID, cart []CartLine) ([]pricing.LineInput, error)
}

type service struct {
	repo   menuRepository
	stores storeLoader
}

// NewService constructs a menu service instance.
func NewService(repo menuRepository, stores storeLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) ensureOwnedStore(ctx context.Context, merchantID, storeID uuid.UUID) error {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.MerchantID != merchantID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return nil
}

func snapshotOf(item *models.Item) (publish.ItemSnapshot, publish.Context) {
	snap := publish.ItemSnapshot{
		Name:       item.Name,
		CategoryID: item.CategoryID,
		VatGroupID: item.VatGroupID,
		PriceCents: item.PriceCents,
		HasImage:   item.HasImage(),
	}
	var ctx publish.Context
	if item.Category != nil {
		active := item.Category.IsActive
		ctx.CategoryActive = &active
	}
	return snap, ctx
}

// ValidateItem runs the publishability rules against a persisted item.
func (s *service) ValidateItem(ctx context.Context, merchantID, storeID, itemID uuid.UUID) (*ItemValidationDTO, error) {
	if err := s.ensureOwnedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	snap, pubCtx := snapshotOf(item)
	return &ItemValidationDTO{ItemID: item.ID, Result: publish.Validate(snap, pubCtx)}, nil
}

// ValidatePayload validates an unsaved snapshot, e.g. a dashboard draft.
func (s *service) ValidatePayload(payload ValidateItemPayload) publish.Result {
	hasImage := payload.ImageURL != nil && *payload.ImageURL != ""
	return publish.Validate(publish.ItemSnapshot{
		Name:       payload.Name,
		CategoryID: payload.CategoryID,
		VatGroupID: payload.VatGroupID,
		PriceCents: payload.PriceCents,
		HasImage:   hasImage,
	}, publish.Context{CategoryActive: payload.CategoryActive})
}

// ListItemIssues validates every item of a store in one pass. Items with no
// issues are omitted.
func (s *service) ListItemIssues(ctx context.Context, merchantID, storeID uuid.UUID) ([]ItemValidationDTO, error) {
	if err := s.ensureOwnedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	out := make([]ItemValidationDTO, 0)
	for i := range items {
		snap, pubCtx := snapshotOf(&items[i])
		result := publish.Validate(snap, pubCtx)
		if result.HasIssues {
			out = append(out, ItemValidationDTO{ItemID: items[i].ID, Result: result})
		}
	}
	return out, nil
}

// StorefrontMenu returns the customer-facing menu: active items that pass
// every publishability rule. Unpublishable items are filtered, never an error.
func (s *service) StorefrontMenu(ctx context.Context, storeID uuid.UUID) (*StorefrontMenuDTO, error) {
	items, err := s.repo.ListActiveItemsByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	menu := &StorefrontMenuDTO{StoreID: storeID, Items: make([]MenuItemDTO, 0, len(items))}
	for i := range items {
		snap, pubCtx := snapshotOf(&items[i])
		if !publish.Validate(snap, pubCtx).Publishable {
			continue
		}
		menu.Items = append(menu.Items, menuItemDTO(&items[i]))
	}
	return menu, nil
}

// ResolveLines turns cart lines into pricing inputs by snapshotting each
// item's current price, VAT rate and option groups. Only publishable items of
// the target store are orderable.
func (s *service) ResolveLines(ctx context.Context, storeID uuid.UUID, cart []CartLine) ([]pricing.LineInput, error) {
	if len(cart) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one line")
	}

	lines := make([]pricing.LineInput, 0, len(cart))
	for i, cl := range cart {
		item, err := s.repo.FindItemByID(ctx, cl.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown item").
					WithDetails(map[string]any{"line": i, "item_id": cl.ItemID})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
		}
		if item.StoreID != storeID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item does not belong to store").
				WithDetails(map[string]any{"line": i, "item_id": cl.ItemID})
		}
		if !item.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item is not available").
				WithDetails(map[string]any{"line": i, "item_id": cl.ItemID})
		}
		snap, pubCtx := snapshotOf(item)
		if !publish.Validate(snap, pubCtx).Publishable {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item is not available").
				WithDetails(map[string]any{"line": i, "item_id": cl.ItemID})
		}

		var vatRate int
		if item.VatGroup != nil {
			vatRate = item.VatGroup.RateBasisPoints
		}

		groups := make([]pricing.GroupSnapshot, 0, len(item.OptionGroups))
		for _, g := range item.OptionGroups {
			choices := make([]pricing.ChoiceSnapshot, 0, len(g.Choices))
			for _, c := range g.Choices {
				choices = append(choices, pricing.ChoiceSnapshot{
					ID:              c.ID,
					Name:            c.Name,
					PriceDeltaCents: c.PriceDeltaCents,
				})
			}
			groups = append(groups, pricing.GroupSnapshot{
				ID:        g.ID,
				Name:      g.Name,
				MinSelect: g.MinSelect,
				MaxSelect: g.MaxSelect,
				Choices:   choices,
			})
		}

		selections := make([]pricing.SelectedOption, 0, len(cl.Selections))
		for _, sel := range cl.Selections {
			selections = append(selections, pricing.SelectedOption{
				GroupID:  sel.GroupID,
				ChoiceID: sel.ChoiceID,
			})
		}

		lines = append(lines, pricing.LineInput{
			ItemID:             item.ID,
			Name:               item.Name,
			Quantity:           cl.Quantity,
			UnitPriceCents:     item.PriceCents,
			VatRateBasisPoints: vatRate,
			Groups:             groups,
			Selections:         selections,
		})
	}
	return lines, nil
}
