package wishlist

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
)

// WishlistEntryDTO is a wishlist row joined with the item it references.
type WishlistEntryDTO struct {
	ItemID       uuid.UUID       `json:"item_id"`
	Name         string          `json:"name"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
}

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry. The unique (customer, item) index surfaces
// duplicates as an error for the service to translate.
func (r *Repository) AddItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	entry := models.WishlistItem{
		CustomerID: customerID,
		ItemID:     itemID,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// ListItems returns the customer's wishlist joined with item names and prices.
func (r *Repository) ListItems(ctx context.Context, customerID uuid.UUID) ([]WishlistEntryDTO, error) {
	var entries []WishlistEntryDTO
	err := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("wi.item_id, i.name, i.price_per_item").
		Joins("JOIN inventory_items i ON i.id = wi.item_id").
		Where("wi.customer_id = ?", customerID).
		Order("wi.created_at ASC").
		Scan(&entries).Error
	return entries, err
}

// RemoveItem deletes the wishlist entry if it exists.
func (r *Repository) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND item_id = ?", customerID, itemID).
		Delete(&models.WishlistItem{})
	return result.RowsAffected, result.Error
}
