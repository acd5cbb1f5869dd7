package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
)

// ItemDTO is the transport shape for a stocked good.
type ItemDTO struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Category     enums.ItemCategory `json:"category"`
	PricePerItem decimal.Decimal    `json:"price_per_item"`
	Description  *string            `json:"description,omitempty"`
	StockCount   int                `json:"stock_count"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CreateItemDTO holds the data required by the repo to persist a new good.
type CreateItemDTO struct {
	Name         string
	Category     enums.ItemCategory
	PricePerItem decimal.Decimal
	Description  *string
	StockCount   int
}

// UpdateItemDTO carries the allow-listed fields an update may change.
type UpdateItemDTO struct {
	Name         *string             `json:"name"`
	Category     *enums.ItemCategory `json:"category"`
	PricePerItem *decimal.Decimal    `json:"price_per_item"`
	Description  *string             `json:"description"`
	StockCount   *int                `json:"stock_count"`
}

func FromModel(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:           item.ID,
		Name:         item.Name,
		Category:     item.Category,
		PricePerItem: item.PricePerItem,
		Description:  item.Description,
		StockCount:   item.StockCount,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func (c CreateItemDTO) ToModel() *models.InventoryItem {
	return &models.InventoryItem{
		Name:         c.Name,
		Category:     c.Category,
		PricePerItem: c.PricePerItem,
		Description:  c.Description,
		StockCount:   c.StockCount,
	}
}
