package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	"github.com/selimkhoury/storefront-backend/internal/inventory"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Repo          *Repository
	CustomerRepo  *customers.Repository
	InventoryRepo *inventory.Repository
}

// Service exposes business rules for cart management.
type Service interface {
	Add(ctx context.Context, input AddToCartInput) error
	View(ctx context.Context, customerID uuid.UUID) ([]CartEntryDTO, error)
	Remove(ctx context.Context, customerID, itemID uuid.UUID) error
}

type service struct {
	repo          *Repository
	customerRepo  *customers.Repository
	inventoryRepo *inventory.Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customers repo is required")
	}
	if params.InventoryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory repo is required")
	}
	return &service{
		repo:          params.Repo,
		customerRepo:  params.CustomerRepo,
		inventoryRepo: params.InventoryRepo,
	}, nil
}

// Add upserts the (customer, item) row: a repeat add accumulates quantity.
func (s *service) Add(ctx context.Context, input AddToCartInput) error {
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if err := s.ensureParties(ctx, input.CustomerID, input.ItemID); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, input.CustomerID, input.ItemID, input.Quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add to cart")
	}
	return nil
}

// View returns the customer's cart with item names resolved.
func (s *service) View(ctx context.Context, customerID uuid.UUID) ([]CartEntryDTO, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "view cart")
	}
	return entries, nil
}

// Remove drops the cart row, reporting 404 when it never existed.
func (s *service) Remove(ctx context.Context, customerID, itemID uuid.UUID) error {
	rows, err := s.repo.Remove(ctx, customerID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove from cart")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Cart item not found")
	}
	return nil
}

func (s *service) ensureCustomer(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return nil
}

func (s *service) ensureParties(ctx context.Context, customerID, itemID uuid.UUID) error {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return err
	}
	if _, err := s.inventoryRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return nil
}
