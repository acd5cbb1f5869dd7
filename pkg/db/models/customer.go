package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/enums"
)

// Customer represents the canonical shopper identity.
type Customer struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Username      string              `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash  string              `gorm:"column:password_hash;not null"`
	FullName      string              `gorm:"column:full_name;not null"`
	Age           int                 `gorm:"column:age;not null"`
	Address       string              `gorm:"column:address;not null"`
	Gender        enums.Gender        `gorm:"column:gender;not null"`
	MaritalStatus enums.MaritalStatus `gorm:"column:marital_status;not null"`
	WalletBalance decimal.Decimal     `gorm:"column:wallet_balance;type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
