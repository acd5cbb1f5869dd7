package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbpkg "github.com/selimkhoury/storefront-backend/pkg/db"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

// AddItemInput captures the fields accepted when stocking a new good.
type AddItemInput struct {
	Name         string
	Category     string
	PricePerItem decimal.Decimal
	Description  *string
	StockCount   int
}

// ServiceParams groups dependencies for the inventory service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes business rules for inventory management.
type Service interface {
	Add(ctx context.Context, input AddItemInput) (*ItemDTO, error)
	List(ctx context.Context) ([]ItemDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemDTO) error
	DeductStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type service struct {
	repo *Repository
}

// NewService builds an inventory service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Add validates and persists a new good.
func (s *service) Add(ctx context.Context, input AddItemInput) (*ItemDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	category, err := enums.ParseItemCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid category")
	}
	if input.PricePerItem.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.StockCount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock count cannot be negative")
	}

	item, err := s.repo.Create(ctx, CreateItemDTO{
		Name:         input.Name,
		Category:     category,
		PricePerItem: input.PricePerItem,
		Description:  input.Description,
		StockCount:   input.StockCount,
	})
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an item with that name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return FromModel(item), nil
}

// List returns every stocked good.
func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	out := make([]ItemDTO, 0, len(records))
	for i := range records {
		out = append(out, *FromModel(&records[i]))
	}
	return out, nil
}

// Get resolves a single good by ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Good not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return FromModel(item), nil
}

// Update applies the allow-listed fields to an item.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateItemDTO) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "Invalid category")
		}
		updates["category"] = *input.Category
	}
	if input.PricePerItem != nil {
		if input.PricePerItem.LessThanOrEqual(decimal.Zero) {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		updates["price_per_item"] = *input.PricePerItem
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.StockCount != nil {
		if *input.StockCount < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock count cannot be negative")
		}
		updates["stock_count"] = *input.StockCount
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}

	rows, err := s.repo.UpdateFields(ctx, id, updates)
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an item with that name already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Good not found")
	}
	return nil
}

// DeductStock removes units through the guarded update so the count can never
// go negative, even under concurrent deductions.
func (s *service) DeductStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid quantity")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Good not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	rows, err := s.repo.DeductStock(ctx, id, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deduct stock")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Insufficient stock")
	}
	return nil
}
