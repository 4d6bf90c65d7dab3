package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/internal/menu"
	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
	"github.com/ordena-app/ordena-backend/pkg/pricing"
)

type lineResolver interface {
	ResolveLines(ctx context.Context, storeID uuid.UUID, cart []menu.CartLine) ([]pricing.LineInput, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service drives the order lifecycle. All mutations run inside a single
// transaction; transitions on the same order are serialized by the optimistic
// version check in the repository.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetByID(ctx context.Context, merchantID, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderDTO, error)
	Cancel(ctx context.Context, input CancelInput) (*OrderDTO, error)
	KitchenQueue(ctx context.Context, merchantID, storeID uuid.UUID) ([]OrderDTO, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	menu     lineResolver
	stores   storeLoader
	payments PaymentProvider
	metrics  transitionRecorder
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, menuSvc lineResolver, stores storeLoader, payments PaymentProvider, metrics transitionRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if menuSvc == nil {
		return nil, fmt.Errorf("line resolver required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment provider required")
	}
	if metrics == nil {
		return nil, fmt.Errorf("metrics recorder required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		menu:     menuSvc,
		stores:   stores,
		payments: payments,
		metrics:  metrics,
	}, nil
}

// Create prices the cart against current menu snapshots and persists the
// order with its lines atomically. The order starts in status created; no
// payment interaction happens here.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order type")
	}

	store, err := s.loadOwnedStore(ctx, input.MerchantID, input.StoreID)
	if err != nil {
		return nil, err
	}
	if !store.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is not accepting orders")
	}

	lines, err := s.menu.ResolveLines(ctx, input.StoreID, input.Lines)
	if err != nil {
		return nil, err
	}
	quote, err := pricing.Price(lines)
	if err != nil {
		return nil, err
	}

	order := buildOrder(store, input, quote)
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.metrics.OrderCreated(store.ID)
	return FromModel(order), nil
}

func (s *service) GetByID(ctx context.Context, merchantID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOwnedOrder(ctx, s.repo, merchantID, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

// UpdateStatus advances an order one step along the transition table. Payment
// capture runs on the transition into confirmed, inside the same transaction
// and before the status write, so a provider failure leaves the order
// untouched.
func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderDTO, error) {
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if input.Target == enums.OrderStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "use the cancel operation to cancel an order")
	}
	if input.Target == enums.OrderStatusCreated {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders cannot return to created")
	}

	var updated *models.Order
	var from enums.OrderStatus
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOwnedOrder(ctx, repo, input.MerchantID, input.OrderID)
		if err != nil {
			return err
		}
		if err := checkTransition(order.Status, input.Target); err != nil {
			return err
		}
		from = order.Status

		now := time.Now().UTC()
		updates := map[string]any{"status": input.Target}
		switch input.Target {
		case enums.OrderStatusConfirmed:
			ref, err := s.payments.Capture(ctx, order.ID, order.TotalCents, order.Currency)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "capture payment")
			}
			updates["payment_ref"] = ref
			updates["payment_captured"] = true
			updates["confirmed_at"] = now
		case enums.OrderStatusCompleted:
			updates["completed_at"] = now
		}

		if err := repo.UpdateOrderStatus(ctx, order.ID, order.Version, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeConflict, "order was updated concurrently")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		updated, err = repo.FindOrderByID(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Recorded after commit so a rollback is never counted.
	s.metrics.OrderTransition(from, input.Target)
	return FromModel(updated), nil
}

// Cancel moves a non-terminal order to cancelled. Captured payments are
// refunded inside the same transaction before the status write. Cancelling an
// already-cancelled order is a no-op; only completed orders conflict.
func (s *service) Cancel(ctx context.Context, input CancelInput) (*OrderDTO, error) {
	var updated *models.Order
	var from enums.OrderStatus
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOwnedOrder(ctx, repo, input.MerchantID, input.OrderID)
		if err != nil {
			return err
		}
		if order.Status == enums.OrderStatusCancelled {
			updated = order
			return nil
		}
		if err := checkTransition(order.Status, enums.OrderStatusCancelled); err != nil {
			return err
		}
		from = order.Status

		if order.PaymentCaptured {
			ref := ""
			if order.PaymentRef != nil {
				ref = *order.PaymentRef
			}
			if err := s.payments.Refund(ctx, order.ID, ref, order.TotalCents, order.Currency); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refund payment")
			}
		}

		updates := map[string]any{
			"status":       enums.OrderStatusCancelled,
			"cancelled_at": time.Now().UTC(),
		}
		if input.Reason != nil {
			updates["cancel_reason"] = *input.Reason
		}

		if err := repo.UpdateOrderStatus(ctx, order.ID, order.Version, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeConflict, "order was updated concurrently")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}

		updated, err = repo.FindOrderByID(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// No metric on the idempotent re-cancel path; nothing transitioned.
	if from != "" {
		s.metrics.OrderTransition(from, enums.OrderStatusCancelled)
	}
	return FromModel(updated), nil
}

// KitchenQueue lists the store's non-terminal orders, oldest first.
func (s *service) KitchenQueue(ctx context.Context, merchantID, storeID uuid.UUID) ([]OrderDTO, error) {
	if _, err := s.loadOwnedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	orders, err := s.repo.ListKitchenOrders(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list kitchen orders")
	}
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *FromModel(&orders[i]))
	}
	return out, nil
}

func (s *service) loadOwnedStore(ctx context.Context, merchantID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.MerchantID != merchantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return store, nil
}

func (s *service) loadOwnedOrder(ctx context.Context, repo Repository, merchantID, orderID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.MerchantID != merchantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// checkTransition distinguishes terminal orders (conflict, the order will
// never move again) from illegal but recoverable requests (validation).
func checkTransition(current, target enums.OrderStatus) error {
	if current.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("order is %s and cannot change status", current))
	}
	if !current.CanTransitionTo(target) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("illegal transition from %s to %s", current, target))
	}
	return nil
}

func buildOrder(store *models.Store, input CreateOrderInput, quote *pricing.Quote) *models.Order {
	items := make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		itemID := line.ItemID
		options := make([]models.OrderItemOption, 0, len(line.Options))
		for _, opt := range line.Options {
			options = append(options, models.OrderItemOption{
				OptionGroupID:   opt.GroupID,
				ChoiceID:        opt.ChoiceID,
				Name:            opt.Name,
				PriceDeltaCents: opt.PriceDeltaCents,
			})
		}
		items = append(items, models.OrderItem{
			ItemID:             &itemID,
			Name:               line.Name,
			Quantity:           line.Quantity,
			UnitPriceCents:     line.UnitPriceCents,
			OptionsPriceCents:  line.OptionsPriceCents,
			LineTotalCents:     line.LineTotalCents,
			VatRateBasisPoints: line.VatRateBasisPoints,
			Options:            options,
		})
	}
	return &models.Order{
		StoreID:       store.ID,
		MerchantID:    store.MerchantID,
		Status:        enums.OrderStatusCreated,
		Type:          input.Type,
		Currency:      store.Currency,
		SubtotalCents: quote.Totals.SubtotalCents,
		VatCents:      quote.Totals.VatCents,
		TotalCents:    quote.Totals.TotalCents,
		Items:         items,
	}
}
