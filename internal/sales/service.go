package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	"github.com/selimkhoury/storefront-backend/internal/inventory"
	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SaleInput identifies the purchase: who buys what, and how much of it.
type SaleInput struct {
	CustomerUsername string
	ItemName         string
	Quantity         int
}

// ServiceParams groups dependencies for the sales service.
type ServiceParams struct {
	Tx            txRunner
	SalesRepo     *Repository
	CustomerRepo  *customers.Repository
	InventoryRepo *inventory.Repository
}

// Service exposes the storefront sale operations.
type Service interface {
	ExecuteSale(ctx context.Context, input SaleInput) (*SaleDTO, error)
	ListGoods(ctx context.Context) ([]GoodSummaryDTO, error)
	GoodDetails(ctx context.Context, itemID uuid.UUID) (*GoodDetailsDTO, error)
	PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]SaleDTO, error)
}

type service struct {
	tx            txRunner
	salesRepo     *Repository
	customerRepo  *customers.Repository
	inventoryRepo *inventory.Repository
}

// NewService builds the sales service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if params.SalesRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales repo is required")
	}
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customers repo is required")
	}
	if params.InventoryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory repo is required")
	}
	return &service{
		tx:            params.Tx,
		salesRepo:     params.SalesRepo,
		customerRepo:  params.CustomerRepo,
		inventoryRepo: params.InventoryRepo,
	}, nil
}

// ExecuteSale processes a purchase as one atomic unit: the stock deduction,
// the wallet debit, and the sale record all commit together or not at all.
// Both writes re-validate against the freshest committed state through their
// WHERE guards, so concurrent sales serialize on the item and wallet rows and
// neither stock nor balance can go negative.
func (s *service) ExecuteSale(ctx context.Context, input SaleInput) (*SaleDTO, error) {
	if input.CustomerUsername == "" || input.ItemName == "" || input.Quantity == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid quantity")
	}

	customer, err := s.customerRepo.FindByUsername(ctx, input.CustomerUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	item, err := s.inventoryRepo.FindByName(ctx, input.ItemName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	// Fail fast against the already-loaded rows. The guarded updates below
	// repeat both checks inside the transaction.
	if item.StockCount < input.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Insufficient stock")
	}
	totalPrice := item.PricePerItem.Mul(decimal.NewFromInt(int64(input.Quantity)))
	if customer.WalletBalance.LessThan(totalPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Insufficient wallet balance")
	}

	sale := &models.Sale{
		CustomerID: customer.ID,
		ItemID:     item.ID,
		Quantity:   input.Quantity,
		TotalPrice: totalPrice,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.inventoryRepo.WithTx(tx).DeductStock(ctx, item.ID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deduct stock")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "Insufficient stock")
		}

		rows, err = s.customerRepo.WithTx(tx).DebitWallet(ctx, customer.ID, totalPrice)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit wallet")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "Insufficient wallet balance")
		}

		if err := s.salesRepo.WithTx(tx).Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saleFromModel(sale), nil
}

// ListGoods returns name and price for every item still in stock.
func (s *service) ListGoods(ctx context.Context) ([]GoodSummaryDTO, error) {
	items, err := s.inventoryRepo.ListInStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list goods")
	}
	goods := make([]GoodSummaryDTO, 0, len(items))
	for i := range items {
		goods = append(goods, GoodSummaryDTO{
			Name:  items[i].Name,
			Price: items[i].PricePerItem,
		})
	}
	return goods, nil
}

// GoodDetails returns the full item view.
func (s *service) GoodDetails(ctx context.Context, itemID uuid.UUID) (*GoodDetailsDTO, error) {
	item, err := s.inventoryRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return goodDetailsFromModel(item), nil
}

// PurchaseHistory lists the customer's past sales, newest first.
func (s *service) PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]SaleDTO, error) {
	records, err := s.salesRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	out := make([]SaleDTO, 0, len(records))
	for i := range records {
		out = append(out, *saleFromModel(&records[i]))
	}
	return out, nil
}
