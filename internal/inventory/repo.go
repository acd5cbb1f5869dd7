package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
)

// Repository exposes inventory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new inventory item and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateItemDTO) (*models.InventoryItem, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an item by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByName resolves an item by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns every item ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListInStock returns items whose stock count is positive.
func (r *Repository) ListInStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("stock_count > 0").
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateFields applies the provided column updates to an item row.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// DeductStock decrements stock only when enough units remain. Zero rows
// affected means the guard rejected the deduction against the freshest
// committed count.
func (r *Repository) DeductStock(ctx context.Context, id uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(`UPDATE inventory_items SET stock_count = stock_count - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND stock_count >= ?`, quantity, id, quantity)
	return result.RowsAffected, result.Error
}
