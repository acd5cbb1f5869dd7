package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	pkgauth "github.com/selimkhoury/storefront-backend/pkg/auth"
	"github.com/selimkhoury/storefront-backend/pkg/auth/session"
	"github.com/selimkhoury/storefront-backend/pkg/config"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

// LoginResultDTO carries the minted token and the authenticated profile.
type LoginResultDTO struct {
	Token    string                 `json:"token"`
	Customer *customers.CustomerDTO `json:"customer"`
}

type sessionCreator interface {
	Create(ctx context.Context, accessID string, customerID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	Customers customers.Service
	Sessions  sessionCreator
	JWT       config.JWTConfig
}

// Service handles the login flow: verify credentials, mint a JWT, and
// register the session under its jti.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResultDTO, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	customers customers.Service
	sessions  sessionCreator
	jwt       config.JWTConfig
}

// NewService builds the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Customers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customers service is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	return &service{
		customers: params.Customers,
		sessions:  params.Sessions,
		jwt:       params.JWT,
	}, nil
}

// Login authenticates the customer and returns a bearer token tied to a live session.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResultDTO, error) {
	customer, err := s.customers.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwt, time.Now().UTC(), pkgauth.AccessTokenPayload{
		CustomerID: customer.ID,
		Username:   customer.Username,
		JTI:        accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	if err := s.sessions.Create(ctx, accessID, customer.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register session")
	}

	return &LoginResultDTO{Token: token, Customer: customer}, nil
}

// Logout revokes the session behind the token's jti, invalidating it early.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}
