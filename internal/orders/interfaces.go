package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// Repository defines persistence operations for orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// UpdateOrderStatus applies the status write guarded by the optimistic
	// version check. It returns gorm.ErrRecordNotFound when no row matched the
	// expected version, i.e. a concurrent transition won.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, expectedVersion int, updates map[string]any) error
	ListKitchenOrders(ctx context.Context, storeID uuid.UUID) ([]models.Order, error)
}

// PaymentProvider abstracts the payment backend. Capture runs when an order is
// confirmed, Refund when a captured order is cancelled. Both are invoked
// inside the transition transaction so a provider failure rolls the status
// write back.
type PaymentProvider interface {
	Capture(ctx context.Context, orderID uuid.UUID, amountCents int, currency enums.Currency) (ref string, err error)
	Refund(ctx context.Context, orderID uuid.UUID, paymentRef string, amountCents int, currency enums.Currency) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type transitionRecorder interface {
	OrderCreated(storeID uuid.UUID)
	OrderTransition(from, to enums.OrderStatus)
}
