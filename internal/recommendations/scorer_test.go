package recommendations

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:recommendations_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.InventoryItem{}, &models.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, username string) models.Customer {
	t.Helper()
	customer := models.Customer{
		Username:      username,
		PasswordHash:  "irrelevant",
		FullName:      username,
		Age:           30,
		Address:       "Beirut",
		Gender:        enums.GenderOther,
		MaritalStatus: enums.MaritalStatusSingle,
		WalletBalance: decimal.Zero,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer %s: %v", username, err)
	}
	return customer
}

func seedItem(t *testing.T, db *gorm.DB, name string, price int64) models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{
		Name:         name,
		Category:     enums.ItemCategoryFood,
		PricePerItem: decimal.NewFromInt(price),
		StockCount:   50,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return item
}

func seedSale(t *testing.T, db *gorm.DB, customer models.Customer, item models.InventoryItem) {
	t.Helper()
	sale := models.Sale{
		CustomerID: customer.ID,
		ItemID:     item.ID,
		Quantity:   1,
		TotalPrice: item.PricePerItem,
	}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}

func TestCoPurchaseScorer(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	target := seedCustomer(t, db, "target")
	peerA := seedCustomer(t, db, "peer-a")
	peerB := seedCustomer(t, db, "peer-b")
	loner := seedCustomer(t, db, "loner")

	shared := seedItem(t, db, "olive oil", 12)
	popular := seedItem(t, db, "zaatar", 6)
	niche := seedItem(t, db, "rosewater", 9)
	unrelated := seedItem(t, db, "loner pick", 4)

	// The target owns the shared item; both peers bought it too.
	seedSale(t, db, target, shared)
	seedSale(t, db, peerA, shared)
	seedSale(t, db, peerB, shared)

	// Both peers bought zaatar, one bought rosewater.
	seedSale(t, db, peerA, popular)
	seedSale(t, db, peerB, popular)
	seedSale(t, db, peerA, niche)

	// A customer with no overlap must not influence the ranking.
	seedSale(t, db, loner, unrelated)

	scorer := NewCoPurchaseScorer(db)
	items, err := scorer.Recommend(ctx, target.ID)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 recommendations, got %+v", items)
	}
	if items[0].Name != "zaatar" || items[0].Score != 2 {
		t.Fatalf("expected zaatar ranked first with score 2, got %+v", items[0])
	}
	if items[1].Name != "rosewater" || items[1].Score != 1 {
		t.Fatalf("expected rosewater second with score 1, got %+v", items[1])
	}
	for _, item := range items {
		if item.ItemID == shared.ID {
			t.Fatal("purchased items must be excluded")
		}
		if item.ItemID == unrelated.ID {
			t.Fatal("items from non-overlapping customers must be excluded")
		}
	}
}

func TestCoPurchaseScorerCapsAtFive(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	target := seedCustomer(t, db, "target")
	peer := seedCustomer(t, db, "peer")
	shared := seedItem(t, db, "anchor", 10)
	seedSale(t, db, target, shared)
	seedSale(t, db, peer, shared)

	for i := 0; i < 7; i++ {
		extra := seedItem(t, db, fmt.Sprintf("extra-%d", i), 5)
		seedSale(t, db, peer, extra)
	}

	scorer := NewCoPurchaseScorer(db)
	items, err := scorer.Recommend(ctx, target.ID)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 recommendations, got %d", len(items))
	}
}

func TestRecommendServiceUnknownCustomer(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	svc, err := NewService(ServiceParams{
		Scorer:       NewCoPurchaseScorer(db),
		CustomerRepo: customers.NewRepository(db),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Recommend(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecommendServiceEmptyHistory(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	target := seedCustomer(t, db, "fresh")
	svc, err := NewService(ServiceParams{
		Scorer:       NewCoPurchaseScorer(db),
		CustomerRepo: customers.NewRepository(db),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	items, err := svc.Recommend(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no recommendations for empty history, got %+v", items)
	}
}
