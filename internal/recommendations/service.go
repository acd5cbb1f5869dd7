package recommendations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

// ServiceParams groups dependencies for the recommendations service.
type ServiceParams struct {
	Scorer       Scorer
	CustomerRepo *customers.Repository
}

// Service exposes product recommendations.
type Service interface {
	Recommend(ctx context.Context, customerID uuid.UUID) ([]RecommendedItem, error)
}

type service struct {
	scorer       Scorer
	customerRepo *customers.Repository
}

// NewService builds the recommendations service around a scoring strategy.
func NewService(params ServiceParams) (Service, error) {
	if params.Scorer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scorer is required")
	}
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customers repo is required")
	}
	return &service{
		scorer:       params.Scorer,
		customerRepo: params.CustomerRepo,
	}, nil
}

// Recommend verifies the customer exists and delegates to the scorer.
func (s *service) Recommend(ctx context.Context, customerID uuid.UUID) ([]RecommendedItem, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	items, err := s.scorer.Recommend(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "score recommendations")
	}
	return items, nil
}
