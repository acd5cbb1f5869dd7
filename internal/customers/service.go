package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/config"
	dbpkg "github.com/selimkhoury/storefront-backend/pkg/db"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
	"github.com/selimkhoury/storefront-backend/pkg/security"
)

// RegisterInput captures the fields accepted at registration time.
type RegisterInput struct {
	Username      string
	Password      string
	FullName      string
	Age           int
	Address       string
	Gender        string
	MaritalStatus string
}

// ServiceParams groups dependencies for the customers service.
type ServiceParams struct {
	Repo     *Repository
	Password config.PasswordConfig
}

// Service exposes business rules for customer management.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*CustomerDTO, error)
	List(ctx context.Context) ([]CustomerDTO, error)
	GetByUsername(ctx context.Context, username string) (*CustomerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerDTO) error
	Delete(ctx context.Context, id uuid.UUID) error
	ChargeWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	DeductWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	Authenticate(ctx context.Context, username, password string) (*CustomerDTO, error)
}

type service struct {
	repo     *Repository
	password config.PasswordConfig
}

// NewService builds a customers service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customers repo is required")
	}
	return &service{
		repo:     params.Repo,
		password: params.Password,
	}, nil
}

// Register validates the input, hashes the password, and persists the customer.
func (s *service) Register(ctx context.Context, input RegisterInput) (*CustomerDTO, error) {
	if !ValidUsername(input.Username) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid username")
	}
	if !ValidPassword(input.Password) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid password")
	}
	if input.Age <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid age")
	}
	gender, err := enums.ParseGender(input.Gender)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid gender")
	}
	marital, err := enums.ParseMaritalStatus(input.MaritalStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid marital status")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	customer, err := s.repo.Create(ctx, CreateCustomerDTO{
		Username:      input.Username,
		PasswordHash:  hash,
		FullName:      input.FullName,
		Age:           input.Age,
		Address:       input.Address,
		Gender:        gender,
		MaritalStatus: marital,
	})
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return FromModel(customer), nil
}

// List returns every customer profile.
func (s *service) List(ctx context.Context) ([]CustomerDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	out := make([]CustomerDTO, 0, len(records))
	for i := range records {
		out = append(out, *FromModel(&records[i]))
	}
	return out, nil
}

// GetByUsername resolves a single customer profile.
func (s *service) GetByUsername(ctx context.Context, username string) (*CustomerDTO, error) {
	customer, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return FromModel(customer), nil
}

// Update applies the allow-listed profile fields. Username, password, and
// wallet balance never change through this path.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerDTO) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	updates := map[string]any{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Age != nil {
		if *input.Age <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "Invalid age")
		}
		updates["age"] = *input.Age
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Gender != nil {
		if !input.Gender.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "Invalid gender")
		}
		updates["gender"] = *input.Gender
	}
	if input.MaritalStatus != nil {
		if !input.MaritalStatus.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "Invalid marital status")
		}
		updates["marital_status"] = *input.MaritalStatus
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}

	rows, err := s.repo.UpdateFields(ctx, id, updates)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
	}
	return nil
}

// Delete removes the customer. Customers with sales history are retained so
// the sales ledger keeps its referential integrity.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	salesCount, err := s.repo.CountSales(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customer sales")
	}
	if salesCount > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "Customer has sales history and cannot be deleted")
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
	}
	return nil
}

// ChargeWallet credits the customer's balance.
func (s *service) ChargeWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid amount")
	}
	rows, err := s.repo.CreditWallet(ctx, id, amount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "charge wallet")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
	}
	return nil
}

// DeductWallet debits the balance through the guarded update so it can never
// go negative, even under concurrent debits.
func (s *service) DeductWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid amount")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	rows, err := s.repo.DebitWallet(ctx, id, amount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deduct wallet")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Insufficient funds")
	}
	return nil
}

// Authenticate verifies the username/password pair for login.
func (s *service) Authenticate(ctx context.Context, username, password string) (*CustomerDTO, error) {
	customer, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	ok, err := security.VerifyPassword(password, customer.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")
	}
	return FromModel(customer), nil
}
