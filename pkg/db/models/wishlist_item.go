package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem links a customer to a liked inventory item. Duplicates are rejected.
type WishlistItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index:wishlist_items_customer_id_idx;uniqueIndex:wishlist_items_customer_item_key"`
	ItemID     uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:wishlist_items_customer_item_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`

	Customer *Customer      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Item     *InventoryItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
