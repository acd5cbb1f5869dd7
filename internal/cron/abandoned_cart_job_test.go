package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/cart"
	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type recordingNotifier struct {
	notices []uuid.UUID
}

func (n *recordingNotifier) NotifyAbandonedCart(ctx context.Context, customerID, itemID uuid.UUID, quantity int) error {
	n.notices = append(n.notices, itemID)
	return nil
}

func newCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:cron_cart_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.InventoryItem{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCartEntry(t *testing.T, db *gorm.DB, age time.Duration) (models.CartItem, uuid.UUID) {
	t.Helper()
	customer := models.Customer{
		Username:      "cart_" + uuid.NewString()[:8],
		PasswordHash:  "x",
		FullName:      "Cart Owner",
		Age:           30,
		Address:       "somewhere",
		Gender:        "Female",
		MaritalStatus: "Single",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	item := models.InventoryItem{
		Name:       "item_" + uuid.NewString()[:8],
		Category:   "Food",
		StockCount: 10,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	entry := models.CartItem{CustomerID: customer.ID, ItemID: item.ID, Quantity: 2}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed cart entry: %v", err)
	}
	if age > 0 {
		stale := time.Now().UTC().Add(-age)
		if err := db.Model(&models.CartItem{}).Where("id = ?", entry.ID).UpdateColumn("added_at", stale).Error; err != nil {
			t.Fatalf("age cart entry: %v", err)
		}
	}
	return entry, item.ID
}

func TestAbandonedCartJobSweepsStaleEntries(t *testing.T) {
	t.Parallel()
	db := newCartTestDB(t)
	staleEntry, staleItemID := seedCartEntry(t, db, 48*time.Hour)
	freshEntry, _ := seedCartEntry(t, db, 0)

	notifier := &recordingNotifier{}
	job, err := NewAbandonedCartJob(AbandonedCartJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		DB:       gormTxRunner{db: db},
		Repo:     cart.NewRepository(db),
		Notifier: notifier,
		MaxAge:   24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run job: %v", err)
	}

	var remaining []models.CartItem
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("load cart rows: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != freshEntry.ID {
		t.Fatalf("expected only the fresh entry to survive, got %+v", remaining)
	}
	if len(notifier.notices) != 1 || notifier.notices[0] != staleItemID {
		t.Fatalf("expected one notice for stale item %s, got %+v", staleEntry.ItemID, notifier.notices)
	}
}

func TestAbandonedCartJobNoStaleEntries(t *testing.T) {
	t.Parallel()
	db := newCartTestDB(t)
	seedCartEntry(t, db, 0)

	notifier := &recordingNotifier{}
	job, err := NewAbandonedCartJob(AbandonedCartJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		DB:       gormTxRunner{db: db},
		Repo:     cart.NewRepository(db),
		Notifier: notifier,
		MaxAge:   24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run job: %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected fresh entry untouched, got %d rows", count)
	}
	if len(notifier.notices) != 0 {
		t.Fatalf("expected no notices, got %+v", notifier.notices)
	}
}

func TestNewAbandonedCartJobValidation(t *testing.T) {
	t.Parallel()
	_, err := NewAbandonedCartJob(AbandonedCartJobParams{})
	if err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}
