package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	"github.com/selimkhoury/storefront-backend/internal/inventory"
	dbpkg "github.com/selimkhoury/storefront-backend/pkg/db"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo          *Repository
	CustomerRepo  *customers.Repository
	InventoryRepo *inventory.Repository
}

// Service exposes business rules for wishlist management.
type Service interface {
	Add(ctx context.Context, customerID, itemID uuid.UUID) error
	View(ctx context.Context, customerID uuid.UUID) ([]WishlistEntryDTO, error)
	Remove(ctx context.Context, customerID, itemID uuid.UUID) error
}

type service struct {
	repo          *Repository
	customerRepo  *customers.Repository
	inventoryRepo *inventory.Repository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
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

// Add ensures both parties exist and inserts the entry. A repeat add is a
// conflict, unlike the cart's accumulating behavior.
func (s *service) Add(ctx context.Context, customerID, itemID uuid.UUID) error {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return err
	}
	if _, err := s.inventoryRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if err := s.repo.AddItem(ctx, customerID, itemID); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Item already in wishlist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add to wishlist")
	}
	return nil
}

// View returns the customer's wishlist.
func (s *service) View(ctx context.Context, customerID uuid.UUID) ([]WishlistEntryDTO, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListItems(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "view wishlist")
	}
	return entries, nil
}

// Remove drops the entry, reporting 404 when it never existed.
func (s *service) Remove(ctx context.Context, customerID, itemID uuid.UUID) error {
	rows, err := s.repo.RemoveItem(ctx, customerID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove from wishlist")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Item not found in wishlist")
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
