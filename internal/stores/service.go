package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena-backend/pkg/db/models"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
}

// Service exposes store operations. Every merchant-facing call verifies the
// store belongs to the acting merchant before touching anything else.
type Service interface {
	GetByID(ctx context.Context, merchantID, storeID uuid.UUID) (*StoreDTO, error)
	GetBySlug(ctx context.Context, slug string) (*StoreDTO, error)
	List(ctx context.Context, merchantID uuid.UUID) ([]StoreDTO, error)
	Update(ctx context.Context, merchantID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Location(ctx context.Context, merchantID, storeID uuid.UUID) (*time.Location, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) load(ctx context.Context, merchantID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.MerchantID != merchantID {
		// Not leaking existence of other tenants' stores.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return store, nil
}

func (s *service) GetByID(ctx context.Context, merchantID, storeID uuid.UUID) (*StoreDTO, error) {
	store, err := s.load(ctx, merchantID, storeID)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*StoreDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if !store.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return FromModel(store), nil
}

func (s *service) List(ctx context.Context, merchantID uuid.UUID) ([]StoreDTO, error) {
	stores, err := s.repo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(stores))
	for i := range stores {
		out = append(out, *FromModel(&stores[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, merchantID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.load(ctx, merchantID, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
		store.Name = name
	}
	if input.Phone != nil {
		store.Phone = cloneStringPtr(input.Phone)
	}
	if input.Email != nil {
		store.Email = cloneStringPtr(input.Email)
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown timezone")
		}
		store.Timezone = *input.Timezone
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

// Location resolves the store's IANA timezone. Stats bucketing depends on it,
// so an unresolvable zone is an internal error rather than a silent UTC
// fallback.
func (s *service) Location(ctx context.Context, merchantID, storeID uuid.UUID) (*time.Location, error) {
	store, err := s.load(ctx, merchantID, storeID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(store.Timezone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store timezone")
	}
	return loc, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
