package recommendations

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultLimit = 5

// RecommendedItem is one scored suggestion for a customer.
type RecommendedItem struct {
	ItemID       uuid.UUID       `json:"item_id"`
	Name         string          `json:"name"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Score        int             `json:"score"`
}

// Scorer produces ranked product suggestions for a customer. Strategies are
// pluggable; the default ranks by co-purchase frequency.
type Scorer interface {
	Recommend(ctx context.Context, customerID uuid.UUID) ([]RecommendedItem, error)
}

// CoPurchaseScorer recommends items frequently bought by customers who share
// a purchase with the target customer, excluding items the customer already
// owns, capped at five suggestions.
type CoPurchaseScorer struct {
	db    *gorm.DB
	limit int
}

// NewCoPurchaseScorer constructs the default scorer.
func NewCoPurchaseScorer(db *gorm.DB) *CoPurchaseScorer {
	return &CoPurchaseScorer{db: db, limit: defaultLimit}
}

// Recommend runs the co-purchase ranking query.
func (s *CoPurchaseScorer) Recommend(ctx context.Context, customerID uuid.UUID) ([]RecommendedItem, error) {
	limit := s.limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var items []RecommendedItem
	err := s.db.WithContext(ctx).Raw(`
SELECT i.id AS item_id, i.name, i.price_per_item, COUNT(*) AS score
FROM sales s
JOIN inventory_items i ON i.id = s.item_id
WHERE s.customer_id IN (
        SELECT DISTINCT peer.customer_id
        FROM sales peer
        WHERE peer.customer_id <> ?
          AND peer.item_id IN (SELECT item_id FROM sales WHERE customer_id = ?)
)
  AND s.item_id NOT IN (SELECT item_id FROM sales WHERE customer_id = ?)
GROUP BY i.id, i.name, i.price_per_item
ORDER BY score DESC, i.name ASC
LIMIT ?`, customerID, customerID, customerID, limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
