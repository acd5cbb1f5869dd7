package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer rating for an inventory item, flaggable by moderation.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index"`
	ItemID     uuid.UUID `gorm:"column:item_id;type:uuid;not null;index"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    *string   `gorm:"column:comment"`
	IsFlagged  bool      `gorm:"column:is_flagged;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Customer *Customer      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Item     *InventoryItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
