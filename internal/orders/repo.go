package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Options").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus writes the transition guarded by the version column. A
// zero-row update means another transition advanced the order first; callers
// translate that into a conflict.
func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, expectedVersion int, updates map[string]any) error {
	updates["version"] = expectedVersion + 1
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND version = ?", orderID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListKitchenOrders returns the active queue for a store: every non-terminal
// order, oldest first. Terminal transitions drop orders out of this query by
// definition of the status filter.
func (r *repository) ListKitchenOrders(ctx context.Context, storeID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Options").
		Where("store_id = ? AND status NOT IN ?", storeID, []enums.OrderStatus{
			enums.OrderStatusCompleted,
			enums.OrderStatusCancelled,
		}).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
