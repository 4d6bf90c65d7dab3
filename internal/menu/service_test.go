package menu

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	"github.com/ordena-app/ordena-backend/pkg/enums"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
)

type stubMenuRepo struct {
	items map[uuid.UUID]*models.Item
	list  []models.Item
	err   error
}

func (s *stubMenuRepo) FindItemByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubMenuRepo) ListItemsByStore(_ context.Context, _ uuid.UUID) ([]models.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubMenuRepo) ListActiveItemsByStore(_ context.Context, _ uuid.UUID) ([]models.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	active := make([]models.Item, 0, len(s.list))
	for _, item := range s.list {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active, nil
}

type stubStoreLoader struct {
	store *models.Store
	err   error
}

func (s *stubStoreLoader) FindByID(_ context.Context, _ uuid.UUID) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.store, nil
}

func publishableItem(storeID uuid.UUID) *models.Item {
	categoryID := uuid.New()
	vatGroupID := uuid.New()
	image := "https://cdn.example.com/margherita.jpg"
	return &models.Item{
		ID:         uuid.New(),
		StoreID:    storeID,
		CategoryID: &categoryID,
		VatGroupID: &vatGroupID,
		Name:       "Margherita",
		PriceCents: 950,
		ImageURL:   &image,
		IsActive:   true,
		Category:   &models.Category{ID: categoryID, StoreID: storeID, Name: "Pizza", IsActive: true},
		VatGroup:   &models.VatGroup{ID: vatGroupID, StoreID: storeID, Code: "reduced", RateBasisPoints: 700},
	}
}

func newMenuService(t *testing.T, repo menuRepository, stores storeLoader) Service {
	t.Helper()
	svc, err := NewService(repo, stores)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestValidateItemPublishable(t *testing.T) {
	storeID := uuid.New()
	merchantID := uuid.New()
	item := publishableItem(storeID)
	repo := &stubMenuRepo{items: map[uuid.UUID]*models.Item{item.ID: item}}
	store := &models.Store{ID: storeID, MerchantID: merchantID}
	svc := newMenuService(t, repo, &stubStoreLoader{store: store})

	dto, err := svc.ValidateItem(context.Background(), merchantID, storeID, item.ID)
	if err != nil {
		t.Fatalf("validate item: %v", err)
	}
	if !dto.Result.Publishable {
		t.Fatalf("expected publishable, got issues %v", dto.Result.Issues)
	}
}

func TestValidateItemCollectsIssues(t *testing.T) {
	storeID := uuid.New()
	merchantID := uuid.New()
	item := publishableItem(storeID)
	item.Name = ""
	item.ImageURL = nil
	repo := &stubMenuRepo{items: map[uuid.UUID]*models.Item{item.ID: item}}
	store := &models.Store{ID: storeID, MerchantID: merchantID}
	svc := newMenuService(t, repo, &stubStoreLoader{store: store})

	dto, err := svc.ValidateItem(context.Background(), merchantID, storeID, item.ID)
	if err != nil {
		t.Fatalf("validate item: %v", err)
	}
	if len(dto.Result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", dto.Result.Issues)
	}
	if dto.Result.Issues[0].Code != enums.ItemIssueMissingName {
		t.Fatalf("expected MISSING_NAME first, got %s", dto.Result.Issues[0].Code)
	}
	if dto.Result.Issues[1].Code != enums.ItemIssueMissingImage {
		t.Fatalf("expected MISSING_IMAGE second, got %s", dto.Result.Issues[1].Code)
	}
}

func TestValidateItemForeignStoreHidden(t *testing.T) {
	storeID := uuid.New()
	item := publishableItem(storeID)
	repo := &stubMenuRepo{items: map[uuid.UUID]*models.Item{item.ID: item}}
	store := &models.Store{ID: storeID, MerchantID: uuid.New()}
	svc := newMenuService(t, repo, &stubStoreLoader{store: store})

	_, err := svc.ValidateItem(context.Background(), uuid.New(), storeID, item.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign merchant, got %v", err)
	}
}

func TestValidatePayloadDraft(t *testing.T) {
	svc := newMenuService(t, &stubMenuRepo{}, &stubStoreLoader{})

	result := svc.ValidatePayload(ValidateItemPayload{Name: "Draft", PriceCents: 0})
	if result.Publishable {
		t.Fatal("expected issues for zero price draft")
	}
}

func TestStorefrontMenuFiltersUnpublishable(t *testing.T) {
	storeID := uuid.New()
	good := publishableItem(storeID)
	noImage := publishableItem(storeID)
	noImage.ImageURL = nil
	inactive := publishableItem(storeID)
	inactive.IsActive = false

	repo := &stubMenuRepo{list: []models.Item{*good, *noImage, *inactive}}
	svc := newMenuService(t, repo, &stubStoreLoader{})

	menu, err := svc.StorefrontMenu(context.Background(), storeID)
	if err != nil {
		t.Fatalf("storefront menu: %v", err)
	}
	if len(menu.Items) != 1 {
		t.Fatalf("expected only the publishable item, got %d", len(menu.Items))
	}
	if menu.Items[0].ID != good.ID {
		t.Fatalf("expected item %s got %s", good.ID, menu.Items[0].ID)
	}
}

func TestResolveLinesSnapshotsPriceAndVat(t *testing.T) {
	storeID := uuid.New()
	item := publishableItem(storeID)
	groupID := uuid.New()
	choiceID := uuid.New()
	item.OptionGroups = []models.OptionGroup{{
		ID:        groupID,
		StoreID:   storeID,
		Name:      "Extras",
		MinSelect: 0,
		MaxSelect: 2,
		Choices:   []models.OptionChoice{{ID: choiceID, OptionGroupID: groupID, Name: "Burrata", PriceDeltaCents: 250}},
	}}
	repo := &stubMenuRepo{items: map[uuid.UUID]*models.Item{item.ID: item}}
	svc := newMenuService(t, repo, &stubStoreLoader{})

	lines, err := svc.ResolveLines(context.Background(), storeID, []CartLine{{
		ItemID:     item.ID,
		Quantity:   2,
		Selections: []CartSelection{{GroupID: groupID, ChoiceID: choiceID}},
	}})
	if err != nil {
		t.Fatalf("resolve lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0]
	if line.UnitPriceCents != 950 {
		t.Fatalf("expected unit price 950, got %d", line.UnitPriceCents)
	}
	if line.VatRateBasisPoints != 700 {
		t.Fatalf("expected vat 700bp, got %d", line.VatRateBasisPoints)
	}
	if len(line.Groups) != 1 || len(line.Groups[0].Choices) != 1 {
		t.Fatalf("expected option group snapshot, got %+v", line.Groups)
	}
	if len(line.Selections) != 1 || line.Selections[0].ChoiceID != choiceID {
		t.Fatalf("expected selection carried over, got %+v", line.Selections)
	}
}

func TestResolveLinesRejectsUnknownItem(t *testing.T) {
	svc := newMenuService(t, &stubMenuRepo{items: map[uuid.UUID]*models.Item{}}, &stubStoreLoader{})

	_, err := svc.ResolveLines(context.Background(), uuid.New(), []CartLine{{ItemID: uuid.New(), Quantity: 1}})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveLinesRejectsUnpublishableItem(t *testing.T) {
	storeID := uuid.New()
	item := publishableItem(storeID)
	item.VatGroupID = nil
	item.VatGroup = nil
	repo := &stubMenuRepo{items: map[uuid.UUID]*models.Item{item.ID: item}}
	svc := newMenuService(t, repo, &stubStoreLoader{})

	_, err := svc.ResolveLines(context.Background(), storeID, []CartLine{{ItemID: item.ID, Quantity: 1}})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveLinesRejectsForeignStoreItem(t *testing.T) {
	item := publishableItem(uuid.New())
	repo := &stubMenuRepo{items: map[uuid.UUID]*models.Item{item.ID: item}}
	svc := newMenuService(t, repo, &stubStoreLoader{})

	_, err := svc.ResolveLines(context.Background(), uuid.New(), []CartLine{{ItemID: item.ID, Quantity: 1}})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
