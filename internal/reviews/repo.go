package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
)

// Repository exposes review persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new review.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindByID loads a review by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByItem returns all reviews for a product, newest first.
func (r *Repository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByCustomer returns all reviews a customer has written, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// UpdateFields applies the provided column updates to a review row.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete removes a review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// FindDetails joins the review with customer and product names.
func (r *Repository) FindDetails(ctx context.Context, id uuid.UUID) (*ReviewDetailsDTO, error) {
	var details ReviewDetailsDTO
	err := r.db.WithContext(ctx).
		Table("reviews r").
		Select("r.id, c.full_name AS customer_name, i.name AS product_name, r.rating, r.comment, r.is_flagged, r.created_at").
		Joins("JOIN customers c ON c.id = r.customer_id").
		Joins("JOIN inventory_items i ON i.id = r.item_id").
		Where("r.id = ?", id).
		Take(&details).Error
	if err != nil {
		return nil, err
	}
	return &details, nil
}
