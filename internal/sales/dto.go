package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
)

// SaleDTO is the transport shape for a completed sale.
type SaleDTO struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	ItemID     uuid.UUID       `json:"item_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	SoldAt     time.Time       `json:"sold_at"`
}

// GoodSummaryDTO is the storefront listing shape: name and price only.
type GoodSummaryDTO struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// GoodDetailsDTO is the full item view returned by the details endpoint.
type GoodDetailsDTO struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Category    enums.ItemCategory `json:"category"`
	Price       decimal.Decimal    `json:"price"`
	Description *string            `json:"description,omitempty"`
	StockCount  int                `json:"stock_count"`
	CreatedAt   time.Time          `json:"created_at"`
}

func saleFromModel(sale *models.Sale) *SaleDTO {
	if sale == nil {
		return nil
	}
	return &SaleDTO{
		ID:         sale.ID,
		CustomerID: sale.CustomerID,
		ItemID:     sale.ItemID,
		Quantity:   sale.Quantity,
		TotalPrice: sale.TotalPrice,
		SoldAt:     sale.SoldAt,
	}
}

func goodDetailsFromModel(item *models.InventoryItem) *GoodDetailsDTO {
	if item == nil {
		return nil
	}
	return &GoodDetailsDTO{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		Price:       item.PricePerItem,
		Description: item.Description,
		StockCount:  item.StockCount,
		CreatedAt:   item.CreatedAt,
	}
}
