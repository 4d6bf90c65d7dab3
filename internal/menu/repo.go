package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
)

// Repository wires together menu persistence: items, categories, VAT groups
// and option groups for one store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindItemByID loads an item with its category, VAT group and option groups.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("VatGroup").
		Preload("OptionGroups.Choices").
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItemsByStore returns all items for a store in display order, with the
// associations the publish rules and storefront rendering need.
func (r *Repository) ListItemsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("VatGroup").
		Preload("OptionGroups.Choices").
		Where("store_id = ?", storeID).
		Order("display_order ASC, name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListActiveItemsByStore returns only active items, same shape as
// ListItemsByStore.
func (r *Repository) ListActiveItemsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("VatGroup").
		Preload("OptionGroups.Choices").
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("display_order ASC, name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindCategoryByID loads a single category.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategoriesByStore returns the store's categories in display order.
func (r *Repository) ListCategoriesByStore(ctx context.Context, storeID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("display_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindVatGroupByID loads a single VAT group.
func (r *Repository) FindVatGroupByID(ctx context.Context, id uuid.UUID) (*models.VatGroup, error) {
	var group models.VatGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ListVatGroupsByStore returns the store's VAT groups.
func (r *Repository) ListVatGroupsByStore(ctx context.Context, storeID uuid.UUID) ([]models.VatGroup, error) {
	var groups []models.VatGroup
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("display_order ASC, code ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
