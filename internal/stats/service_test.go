package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
)

func setupStatsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:statsrepo?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  merchant_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'created',
  type TEXT NOT NULL DEFAULT 'dine_in',
  currency TEXT NOT NULL DEFAULT 'EUR',
  subtotal_cents INTEGER NOT NULL,
  vat_cents INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  cancel_reason TEXT,
  payment_ref TEXT,
  payment_captured INTEGER NOT NULL DEFAULT 0,
  version INTEGER NOT NULL DEFAULT 0,
  confirmed_at DATETIME,
  completed_at DATETIME,
  cancelled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
)`, `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_id TEXT,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  options_price_cents INTEGER NOT NULL DEFAULT 0,
  line_total_cents INTEGER NOT NULL,
  vat_rate_basis_points INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
)`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM order_items")
		db.Exec("DELETE FROM orders")
	})

	return db
}

type stubStoreLoader struct {
	store *models.Store
}

func (s *stubStoreLoader) FindByID(_ context.Context, _ uuid.UUID) (*models.Store, error) {
	if s.store == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}

func berlinStore() *models.Store {
	return &models.Store{
		ID:         uuid.New(),
		MerchantID: uuid.New(),
		Currency:   enums.CurrencyEUR,
		Timezone:   "Europe/Berlin",
		IsActive:   true,
	}
}

func seedStatsOrder(t *testing.T, db *gorm.DB, store *models.Store, status enums.OrderStatus, totalCents int, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:            uuid.New(),
		StoreID:       store.ID,
		MerchantID:    store.MerchantID,
		Status:        status,
		Type:          enums.OrderTypeDineIn,
		Currency:      store.Currency,
		SubtotalCents: totalCents,
		VatCents:      0,
		TotalCents:    totalCents,
		CreatedAt:     createdAt,
		Items: []models.OrderItem{{
			ID:                 uuid.New(),
			Name:               "Margherita",
			Quantity:           1,
			UnitPriceCents:     totalCents,
			LineTotalCents:     totalCents,
			VatRateBasisPoints: 0,
		}},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func newStatsService(t *testing.T, db *gorm.DB, store *models.Store) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), &stubStoreLoader{store: store})
	require.NoError(t, err)
	return svc
}

func TestGetOrderStatsCountsCompletedOnly(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 1000, at)
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 2000, at.Add(time.Hour))
	seedStatsOrder(t, db, store, enums.OrderStatusCancelled, 5000, at.Add(2*time.Hour))
	seedStatsOrder(t, db, store, enums.OrderStatusPreparing, 700, at.Add(3*time.Hour))

	svc := newStatsService(t, db, store)
	stats, err := svc.GetOrderStats(context.Background(), store.MerchantID, store.ID,
		at.Add(-time.Hour), at.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.OrderCount)
	assert.Equal(t, 3000, stats.RevenueCents)
	assert.Equal(t, 1500, stats.AverageOrderValueCents)
	assert.Equal(t, 1, stats.CancelledCount)
}

func TestGetOrderStatsEmptyRange(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()

	svc := newStatsService(t, db, store)
	stats, err := svc.GetOrderStats(context.Background(), store.MerchantID, store.ID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 0, stats.OrderCount)
	assert.Equal(t, 0, stats.RevenueCents)
	assert.Equal(t, 0, stats.AverageOrderValueCents, "average must be 0 when no orders")
}

func TestGetOrderStatsRangeBoundaries(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 100, from)                    // inclusive start
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 200, to)                      // exclusive end
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 400, from.Add(-time.Second))  // before
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 800, to.Add(-1*time.Second))  // last in range

	svc := newStatsService(t, db, store)
	stats, err := svc.GetOrderStats(context.Background(), store.MerchantID, store.ID, from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.OrderCount)
	assert.Equal(t, 900, stats.RevenueCents)
}

func TestGetOrderStatsInvalidRange(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()
	svc := newStatsService(t, db, store)

	at := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetOrderStats(context.Background(), store.MerchantID, store.ID, at, at)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "expected validation error, got %v", err)
}

func TestGetOrderStatsOmittedRangeCoversAllHistory(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()

	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 1000,
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 2000,
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	svc := newStatsService(t, db, store)
	stats, err := svc.GetOrderStats(context.Background(), store.MerchantID, store.ID,
		time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.OrderCount)
	assert.Equal(t, 3000, stats.RevenueCents)
}

func TestGetOrderStatsOpenEndedRange(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 1000, cutoff.Add(-time.Hour))
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 2000, cutoff.Add(time.Hour))

	svc := newStatsService(t, db, store)
	stats, err := svc.GetOrderStats(context.Background(), store.MerchantID, store.ID,
		cutoff, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.OrderCount)
	assert.Equal(t, 2000, stats.RevenueCents)
}

func TestGetOrderStatsForeignMerchantHidden(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()
	svc := newStatsService(t, db, store)

	_, err := svc.GetOrderStats(context.Background(), uuid.New(), store.ID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "expected not found, got %v", err)
}

func TestGetDailyOrderStatsBucketsInStoreTimezone(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()

	// 23:30 UTC on March 10 is already March 11 in Berlin (UTC+1).
	lateNight := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	midday := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 1000, midday)
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 2000, lateNight)

	svc := newStatsService(t, db, store)
	days, err := svc.GetDailyOrderStats(context.Background(), store.MerchantID, store.ID,
		midday.Add(-time.Hour), lateNight.Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, "2026-03-10", days[0].Date)
	assert.Equal(t, 1000, days[0].RevenueCents)
	assert.Equal(t, "2026-03-11", days[1].Date)
	assert.Equal(t, 2000, days[1].RevenueCents)
}

func TestGetDailyOrderStatsPerDayAverages(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 1000, at)
	seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 3000, at.Add(time.Hour))
	seedStatsOrder(t, db, store, enums.OrderStatusCancelled, 9000, at.Add(2*time.Hour))

	svc := newStatsService(t, db, store)
	days, err := svc.GetDailyOrderStats(context.Background(), store.MerchantID, store.ID,
		at.Add(-time.Hour), at.Add(12*time.Hour))
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].OrderCount)
	assert.Equal(t, 2000, days[0].AverageOrderValueCents)
	assert.Equal(t, 1, days[0].CancelledCount)
}

func TestGetOrdersForExportFlattensLines(t *testing.T) {
	db := setupStatsTestDB(t)
	store := berlinStore()
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	order := seedStatsOrder(t, db, store, enums.OrderStatusCompleted, 1000, at)
	extra := models.OrderItem{
		ID:                 uuid.New(),
		OrderID:            order.ID,
		Name:               "Tiramisu",
		Quantity:           2,
		UnitPriceCents:     450,
		LineTotalCents:     900,
		VatRateBasisPoints: 700,
	}
	require.NoError(t, db.Create(&extra).Error)

	svc := newStatsService(t, db, store)
	rows, err := svc.GetOrdersForExport(context.Background(), store.MerchantID, store.ID,
		at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, order.ID, row.OrderID)
		assert.Equal(t, 1000, row.OrderTotalCents)
	}
	assert.Equal(t, "Margherita", rows[0].ItemName)
	assert.Equal(t, "Tiramisu", rows[1].ItemName)
	assert.Equal(t, 900, rows[1].LineTotalCents)
}
