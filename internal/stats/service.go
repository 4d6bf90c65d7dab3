package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
)

type orderReader interface {
	ListOrders(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.Order, error)
	ListOrdersWithItems(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.Order, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service aggregates order statistics per store and time range.
type Service interface {
	GetOrderStats(ctx context.Context, merchantID, storeID uuid.UUID, from, to time.Time) (*OrderStatsDTO, error)
	GetDailyOrderStats(ctx context.Context, merchantID, storeID uuid.UUID, from, to time.Time) ([]DailyOrderStatsDTO, error)
	GetOrdersForExport(ctx context.Context, merchantID, storeID uuid.UUID, from, to time.Time) ([]ExportRow, error)
}

type service struct {
	repo   orderReader
	stores storeLoader
}

// NewService constructs a stats service instance.
func NewService(repo orderReader, stores storeLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, stores: stores}, nil
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

// validateRange accepts open bounds. A zero from or to means unbounded on
// that side; only a non-empty range can be inverted.
func validateRange(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return pkgerrors.New(pkgerrors.CodeValidation, "range start must be before range end")
	}
	return nil
}

func (s *service) GetOrderStats(ctx context.Context, merchantID, storeID uuid.UUID, from, to time.Time) (*OrderStatsDTO, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if _, err := s.loadOwnedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}

	orders, err := s.repo.ListOrders(ctx, storeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	stats := &OrderStatsDTO{}
	for _, order := range orders {
		accumulate(order, &stats.OrderCount, &stats.RevenueCents, &stats.CancelledCount)
	}
	stats.AverageOrderValueCents = average(stats.RevenueCents, stats.OrderCount)
	return stats, nil
}

// GetDailyOrderStats buckets orders by the calendar day of their creation in
// the store's timezone. Days without orders are omitted.
func (s *service) GetDailyOrderStats(ctx context.Context, merchantID, storeID uuid.UUID, from, to time.Time) ([]DailyOrderStatsDTO, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	store, err := s.loadOwnedStore(ctx, merchantID, storeID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(store.Timezone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store timezone")
	}

	orders, err := s.repo.ListOrders(ctx, storeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	buckets := make(map[string]*DailyOrderStatsDTO)
	for _, order := range orders {
		day := order.CreatedAt.In(loc).Format("2006-01-02")
		bucket, ok := buckets[day]
		if !ok {
			bucket = &DailyOrderStatsDTO{Date: day}
			buckets[day] = bucket
		}
		accumulate(order, &bucket.OrderCount, &bucket.RevenueCents, &bucket.CancelledCount)
	}

	out := make([]DailyOrderStatsDTO, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.AverageOrderValueCents = average(bucket.RevenueCents, bucket.OrderCount)
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// GetOrdersForExport flattens orders into one row per order line with the
// order-level fields denormalized onto each row.
func (s *service) GetOrdersForExport(ctx context.Context, merchantID, storeID uuid.UUID, from, to time.Time) ([]ExportRow, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if _, err := s.loadOwnedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}

	orders, err := s.repo.ListOrdersWithItems(ctx, storeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	rows := make([]ExportRow, 0, len(orders))
	for _, order := range orders {
		for _, item := range order.Items {
			rows = append(rows, ExportRow{
				OrderID:            order.ID,
				OrderCreatedAt:     order.CreatedAt,
				OrderStatus:        order.Status,
				OrderType:          order.Type,
				Currency:           order.Currency,
				OrderSubtotalCents: order.SubtotalCents,
				OrderVatCents:      order.VatCents,
				OrderTotalCents:    order.TotalCents,
				ItemName:           item.Name,
				Quantity:           item.Quantity,
				UnitPriceCents:     item.UnitPriceCents,
				OptionsPriceCents:  item.OptionsPriceCents,
				LineTotalCents:     item.LineTotalCents,
				VatRateBasisPoints: item.VatRateBasisPoints,
			})
		}
	}
	return rows, nil
}

// accumulate folds one order into the counters. Only completed orders count
// toward order count and revenue; cancellations land in their own counter and
// everything in flight is ignored.
func accumulate(order models.Order, count, revenue, cancelled *int) {
	switch order.Status {
	case enums.OrderStatusCompleted:
		*count++
		*revenue += order.TotalCents
	case enums.OrderStatusCancelled:
		*cancelled++
	}
}

func average(revenueCents, count int) int {
	if count == 0 {
		return 0
	}
	return revenueCents / count
}
