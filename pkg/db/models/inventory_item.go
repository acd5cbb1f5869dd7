package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/enums"
)

// InventoryItem is a catalog listing with its live stock count.
type InventoryItem struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name         string             `gorm:"column:name;not null;uniqueIndex"`
	Category     enums.ItemCategory `gorm:"column:category;not null"`
	PricePerItem decimal.Decimal    `gorm:"column:price_per_item;type:numeric(12,2);not null"`
	Description  *string            `gorm:"column:description"`
	StockCount   int                `gorm:"column:stock_count;not null;default:0"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
