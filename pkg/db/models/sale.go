package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is an append-only ledger row recording one completed purchase.
// TotalPrice is fixed at sale time and never recomputed from later prices.
type Sale struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"column:item_id;type:uuid;not null;index"`
	Quantity   int             `gorm:"column:quantity;not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	SoldAt     time.Time       `gorm:"column:sold_at;autoCreateTime"`

	Customer *Customer      `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Item     *InventoryItem `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
