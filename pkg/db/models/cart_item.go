package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem holds one customer/item pairing; re-adding the item bumps Quantity.
type CartItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index:cart_items_customer_id_idx;uniqueIndex:cart_items_customer_item_key"`
	ItemID     uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:cart_items_customer_item_key"`
	Quantity   int       `gorm:"column:quantity;not null"`
	AddedAt    time.Time `gorm:"column:added_at;autoCreateTime"`

	Customer *Customer      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Item     *InventoryItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
