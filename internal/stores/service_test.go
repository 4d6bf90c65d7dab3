package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
)

type stubStoreRepo struct {
	store *models.Store
	list  []models.Store
	err   error

	updated *models.Store
}

func (s *stubStoreRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.store, nil
}

func (s *stubStoreRepo) FindBySlug(_ context.Context, _ string) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.store, nil
}

func (s *stubStoreRepo) FindByMerchant(_ context.Context, _ uuid.UUID) ([]models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubStoreRepo) Update(_ context.Context, store *models.Store) error {
	if s.err != nil {
		return s.err
	}
	s.updated = store
	return nil
}

func baseStore() *models.Store {
	phone := "+49 30 1234567"
	return &models.Store{
		ID:         uuid.New(),
		MerchantID: uuid.New(),
		Name:       "Trattoria Nino",
		Slug:       "trattoria-nino",
		Phone:      &phone,
		Currency:   enums.CurrencyEUR,
		Timezone:   "Europe/Berlin",
		IsActive:   true,
	}
}

func stringPtr(s string) *string { return &s }

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceGetByIDSuccess(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetByID(context.Background(), store.MerchantID, store.ID)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if dto.ID != store.ID {
		t.Fatalf("expected id %s got %s", store.ID, dto.ID)
	}
	if dto.Timezone != "Europe/Berlin" {
		t.Fatalf("expected timezone Europe/Berlin got %s", dto.Timezone)
	}
}

func TestServiceGetByIDWrongMerchant(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New(), store.ID)
	if gotErr == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, err := NewService(&stubStoreRepo{err: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New(), uuid.New())
	if gotErr == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceGetByIDDependencyError(t *testing.T) {
	svc, err := NewService(&stubStoreRepo{err: errors.New("boom")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New(), uuid.New())
	if gotErr == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}

func TestServiceGetBySlugInactiveHidden(t *testing.T) {
	store := baseStore()
	store.IsActive = false
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetBySlug(context.Background(), store.Slug)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive store, got %v", gotErr)
	}
}

func TestServiceUpdateSuccess(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := UpdateStoreInput{
		Name:     stringPtr("Trattoria Nino 2"),
		Timezone: stringPtr("Europe/Madrid"),
	}
	dto, err := svc.Update(context.Background(), store.MerchantID, store.ID, input)
	if err != nil {
		t.Fatalf("update store: %v", err)
	}
	if dto.Name != "Trattoria Nino 2" {
		t.Fatalf("expected name updated, got %s", dto.Name)
	}
	if dto.Timezone != "Europe/Madrid" {
		t.Fatalf("expected timezone updated, got %s", dto.Timezone)
	}
	if repo.updated == nil {
		t.Fatal("expected repo update call")
	}
}

func TestServiceUpdateRejectsBadTimezone(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Update(context.Background(), store.MerchantID, store.ID, UpdateStoreInput{
		Timezone: stringPtr("Mars/Olympus"),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceUpdateRejectsEmptyName(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Update(context.Background(), store.MerchantID, store.ID, UpdateStoreInput{
		Name: stringPtr("   "),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceLocation(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	loc, err := svc.Location(context.Background(), store.MerchantID, store.ID)
	if err != nil {
		t.Fatalf("resolve location: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Fatalf("expected Europe/Berlin got %s", loc)
	}
}
