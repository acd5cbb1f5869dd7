package customers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
)

// CustomerDTO is the transport shape that omits the password hash.
type CustomerDTO struct {
	ID            uuid.UUID           `json:"id"`
	Username      string              `json:"username"`
	FullName      string              `json:"full_name"`
	Age           int                 `json:"age"`
	Address       string              `json:"address"`
	Gender        enums.Gender        `json:"gender"`
	MaritalStatus enums.MaritalStatus `json:"marital_status"`
	WalletBalance decimal.Decimal     `json:"wallet_balance"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// CreateCustomerDTO holds the data required by the repo to persist a new customer.
type CreateCustomerDTO struct {
	Username      string
	PasswordHash  string
	FullName      string
	Age           int
	Address       string
	Gender        enums.Gender
	MaritalStatus enums.MaritalStatus
}

// UpdateCustomerDTO carries the profile fields that may change after
// registration. Username, password, and wallet balance have their own paths.
type UpdateCustomerDTO struct {
	FullName      *string              `json:"full_name"`
	Age           *int                 `json:"age"`
	Address       *string              `json:"address"`
	Gender        *enums.Gender        `json:"gender"`
	MaritalStatus *enums.MaritalStatus `json:"marital_status"`
}

func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}

	return &CustomerDTO{
		ID:            c.ID,
		Username:      c.Username,
		FullName:      c.FullName,
		Age:           c.Age,
		Address:       c.Address,
		Gender:        c.Gender,
		MaritalStatus: c.MaritalStatus,
		WalletBalance: c.WalletBalance,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (c CreateCustomerDTO) ToModel() *models.Customer {
	return &models.Customer{
		Username:      c.Username,
		PasswordHash:  c.PasswordHash,
		FullName:      c.FullName,
		Age:           c.Age,
		Address:       c.Address,
		Gender:        c.Gender,
		MaritalStatus: c.MaritalStatus,
		WalletBalance: decimal.Zero,
	}
}
