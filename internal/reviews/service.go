package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	"github.com/selimkhoury/storefront-backend/internal/inventory"
	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

const (
	ratingMin = 1
	ratingMax = 5
)

// ServiceParams groups dependencies for the reviews service.
type ServiceParams struct {
	Repo          *Repository
	CustomerRepo  *customers.Repository
	InventoryRepo *inventory.Repository
}

// Service exposes business rules for product reviews.
type Service interface {
	Submit(ctx context.Context, input SubmitReviewInput) (*ReviewDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateReviewInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]ReviewDTO, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]ReviewDTO, error)
	Moderate(ctx context.Context, id uuid.UUID, flagged bool) (*ReviewDTO, error)
	Details(ctx context.Context, id uuid.UUID) (*ReviewDetailsDTO, error)
}

type service struct {
	repo          *Repository
	customerRepo  *customers.Repository
	inventoryRepo *inventory.Repository
}

// NewService builds a reviews service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviews repo is required")
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

// Submit validates FK existence and the rating range, then persists the review.
func (s *service) Submit(ctx context.Context, input SubmitReviewInput) (*ReviewDTO, error) {
	if input.Rating < ratingMin || input.Rating > ratingMax {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if _, err := s.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	if _, err := s.inventoryRepo.FindByID(ctx, input.ItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	review := &models.Review{
		CustomerID: input.CustomerID,
		ItemID:     input.ItemID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return FromModel(review), nil
}

// Update changes the rating and/or comment of an existing review.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateReviewInput) error {
	updates := map[string]any{}
	if input.Rating != nil {
		if *input.Rating < ratingMin || *input.Rating > ratingMax {
			return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
		}
		updates["rating"] = *input.Rating
	}
	if input.Comment != nil {
		updates["comment"] = *input.Comment
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}

	rows, err := s.repo.UpdateFields(ctx, id, updates)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update review")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Review not found")
	}
	return nil
}

// Delete removes the review.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Review not found")
	}
	return nil
}

// ListByItem returns every review for a product.
func (s *service) ListByItem(ctx context.Context, itemID uuid.UUID) ([]ReviewDTO, error) {
	records, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product reviews")
	}
	return toDTOs(records), nil
}

// ListByCustomer returns every review written by a customer.
func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]ReviewDTO, error) {
	records, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer reviews")
	}
	return toDTOs(records), nil
}

// Moderate sets the flagged status and returns the updated review.
func (s *service) Moderate(ctx context.Context, id uuid.UUID, flagged bool) (*ReviewDTO, error) {
	rows, err := s.repo.UpdateFields(ctx, id, map[string]any{"is_flagged": flagged})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "moderate review")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Review not found")
	}
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload review")
	}
	return FromModel(review), nil
}

// Details returns the joined review view with names resolved.
func (s *service) Details(ctx context.Context, id uuid.UUID) (*ReviewDetailsDTO, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review details")
	}
	return details, nil
}

func toDTOs(records []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(records))
	for i := range records {
		out = append(out, *FromModel(&records[i]))
	}
	return out
}
