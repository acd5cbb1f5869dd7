package customers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
)

// Repository exposes customer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new customer and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateCustomerDTO) (*models.Customer, error) {
	customer := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// FindByID loads a customer by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByUsername retrieves the customer matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns all customers ordered by username.
func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// UpdateFields applies the provided column updates to a customer row.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete removes the customer row. Sales rows restrict the delete at the
// database level; callers translate that failure into a conflict.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// CountSales reports how many sales reference the customer.
func (r *Repository) CountSales(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("customer_id = ?", id).
		Count(&count).Error
	return count, err
}

// CreditWallet adds the amount to the customer's balance in a single statement.
func (r *Repository) CreditWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(`UPDATE customers SET wallet_balance = wallet_balance + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, amount, id)
	return result.RowsAffected, result.Error
}

// DebitWallet subtracts the amount only when the balance covers it. A zero
// RowsAffected result means the guard rejected the debit against the freshest
// committed balance.
func (r *Repository) DebitWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(`UPDATE customers SET wallet_balance = wallet_balance - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND wallet_balance >= ?`, amount, id, amount)
	return result.RowsAffected, result.Error
}
