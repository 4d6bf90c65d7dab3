package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/internal/repo"
	"github.com/ordena-app/ordena-backend/pkg/db/models"
)

// Repository reads order data for aggregation and export. Time filtering
// happens on created_at in UTC; bucketing into local days is the service's
// job so sqlite and postgres agree.
type Repository struct {
	repo.Base
}

// NewRepository builds a stats repository on the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListOrders returns a store's orders created within [from, to), without
// lines, ordered by creation time. A zero from or to leaves that side of the
// range unbounded.
func (r *Repository) ListOrders(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.rangeQuery(ctx, storeID, from, to).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersWithItems is ListOrders with order lines preloaded, for export.
func (r *Repository) ListOrdersWithItems(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.rangeQuery(ctx, storeID, from, to).
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) rangeQuery(ctx context.Context, storeID uuid.UUID, from, to time.Time) *gorm.DB {
	q := r.DB(ctx).Where("store_id = ?", storeID)
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	return q.Order("created_at ASC")
}
