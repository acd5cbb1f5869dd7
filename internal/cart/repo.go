package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Upsert inserts the (customer, item) row or bumps its quantity in a
// single statement, so concurrent first-adds both land on the unique
// index and accumulate instead of colliding.
func (r *Repository) Upsert(ctx context.Context, customerID, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO cart_items (id, customer_id, item_id, quantity, added_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (customer_id, item_id)
		 DO UPDATE SET quantity = cart_items.quantity + excluded.quantity`,
		uuid.New(), customerID, itemID, quantity, time.Now().UTC(),
	).Error
}

// ListEntries returns the customer's cart rows joined with item names.
func (r *Repository) ListEntries(ctx context.Context, customerID uuid.UUID) ([]CartEntryDTO, error) {
	var entries []CartEntryDTO
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.item_id, i.name, ci.quantity, ci.added_at").
		Joins("JOIN inventory_items i ON i.id = ci.item_id").
		Where("ci.customer_id = ?", customerID).
		Order("ci.added_at ASC").
		Scan(&entries).Error
	return entries, err
}

// Remove deletes the customer's cart row for the item.
func (r *Repository) Remove(ctx context.Context, customerID, itemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND item_id = ?", customerID, itemID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ListAbandoned returns cart rows added before the cutoff.
func (r *Repository) ListAbandoned(ctx context.Context, cutoff time.Time) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).
		Where("added_at < ?", cutoff).
		Order("added_at ASC").
		Find(&rows).Error
	return rows, err
}

// DeleteByIDs removes the provided cart rows.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}
