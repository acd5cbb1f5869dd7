package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/customers"
	"github.com/selimkhoury/storefront-backend/internal/inventory"
	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:cart_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.InventoryItem{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	svc      Service
	repo     *Repository
	db       *gorm.DB
	customer models.Customer
	item     models.InventoryItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	customer := models.Customer{
		Username:      "marwan22",
		PasswordHash:  "irrelevant",
		FullName:      "Marwan Haddad",
		Age:           28,
		Address:       "12 Bliss Street, Beirut",
		Gender:        enums.GenderMale,
		MaritalStatus: enums.MaritalStatusSingle,
		WalletBalance: decimal.Zero,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	item := models.InventoryItem{
		Name:         "olive oil",
		Category:     enums.ItemCategoryFood,
		PricePerItem: decimal.NewFromInt(12),
		StockCount:   20,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{
		Repo:          repo,
		CustomerRepo:  customers.NewRepository(db),
		InventoryRepo: inventory.NewRepository(db),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{svc: svc, repo: repo, db: db, customer: customer, item: item}
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	coded := pkgerrors.As(err)
	if coded == nil {
		t.Fatalf("expected coded error with %s, got %v", want, err)
	}
	if coded.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, coded.Code(), err)
	}
}

func TestAddAccumulatesQuantity(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	input := AddToCartInput{CustomerID: f.customer.ID, ItemID: f.item.ID, Quantity: 2}
	if err := f.svc.Add(ctx, input); err != nil {
		t.Fatalf("first add: %v", err)
	}
	input.Quantity = 3
	if err := f.svc.Add(ctx, input); err != nil {
		t.Fatalf("second add: %v", err)
	}

	entries, err := f.svc.View(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected single row after repeat add, got %d", len(entries))
	}
	if entries[0].Quantity != 5 || entries[0].Name != "olive oil" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestAddValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.Add(ctx, AddToCartInput{CustomerID: f.customer.ID, ItemID: f.item.ID, Quantity: 0})
	assertCode(t, err, pkgerrors.CodeValidation)

	err = f.svc.Add(ctx, AddToCartInput{CustomerID: uuid.New(), ItemID: f.item.ID, Quantity: 1})
	assertCode(t, err, pkgerrors.CodeNotFound)

	err = f.svc.Add(ctx, AddToCartInput{CustomerID: f.customer.ID, ItemID: uuid.New(), Quantity: 1})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestViewUnknownCustomer(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.View(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.Add(ctx, AddToCartInput{CustomerID: f.customer.ID, ItemID: f.item.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.svc.Remove(ctx, f.customer.ID, f.item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err := f.svc.Remove(ctx, f.customer.ID, f.item.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)

	entries, err := f.svc.View(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty cart, got %+v", entries)
	}
}

func TestListAbandonedRespectsCutoff(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	stale := models.CartItem{
		CustomerID: f.customer.ID,
		ItemID:     f.item.ID,
		Quantity:   1,
	}
	if err := f.db.Create(&stale).Error; err != nil {
		t.Fatalf("seed stale row: %v", err)
	}
	old := time.Now().UTC().Add(-48 * time.Hour)
	if err := f.db.Model(&stale).UpdateColumn("added_at", old).Error; err != nil {
		t.Fatalf("age stale row: %v", err)
	}

	second := models.InventoryItem{
		Name:         "ceramic mug",
		Category:     enums.ItemCategoryAccessories,
		PricePerItem: decimal.NewFromInt(18),
		StockCount:   5,
	}
	if err := f.db.Create(&second).Error; err != nil {
		t.Fatalf("seed second item: %v", err)
	}
	fresh := models.CartItem{
		CustomerID: f.customer.ID,
		ItemID:     second.ID,
		Quantity:   1,
	}
	if err := f.db.Create(&fresh).Error; err != nil {
		t.Fatalf("seed fresh row: %v", err)
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	abandoned, err := f.repo.ListAbandoned(ctx, cutoff)
	if err != nil {
		t.Fatalf("list abandoned: %v", err)
	}
	if len(abandoned) != 1 || abandoned[0].ID != stale.ID {
		t.Fatalf("expected only the stale row, got %+v", abandoned)
	}

	removed, err := f.repo.DeleteByIDs(ctx, []uuid.UUID{stale.ID})
	if err != nil {
		t.Fatalf("delete abandoned: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one row removed, got %d", removed)
	}

	var remaining []models.CartItem
	if err := f.db.Find(&remaining).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != fresh.ID {
		t.Fatalf("fresh row must survive the sweep, got %+v", remaining)
	}
}
