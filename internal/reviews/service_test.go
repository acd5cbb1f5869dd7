package reviews

import (
	"context"
	"testing"

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
	dsn := "file:reviews_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.InventoryItem{}, &models.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	svc      Service
	db       *gorm.DB
	customer models.Customer
	item     models.InventoryItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	customer := models.Customer{
		Username:      "nadia-k",
		PasswordHash:  "irrelevant",
		FullName:      "Nadia Karam",
		Age:           34,
		Address:       "8 Gemmayze, Beirut",
		Gender:        enums.GenderFemale,
		MaritalStatus: enums.MaritalStatusMarried,
		WalletBalance: decimal.Zero,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	item := models.InventoryItem{
		Name:         "ceramic mug",
		Category:     enums.ItemCategoryAccessories,
		PricePerItem: decimal.NewFromInt(18),
		StockCount:   12,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	svc, err := NewService(ServiceParams{
		Repo:          NewRepository(db),
		CustomerRepo:  customers.NewRepository(db),
		InventoryRepo: inventory.NewRepository(db),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{svc: svc, db: db, customer: customer, item: item}
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

func TestSubmitAndDetails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	comment := "sturdy and well glazed"
	dto, err := f.svc.Submit(ctx, SubmitReviewInput{
		CustomerID: f.customer.ID,
		ItemID:     f.item.ID,
		Rating:     4,
		Comment:    &comment,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if dto.ID == uuid.Nil || dto.Rating != 4 || dto.IsFlagged {
		t.Fatalf("unexpected review %+v", dto)
	}

	details, err := f.svc.Details(ctx, dto.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.CustomerName != "Nadia Karam" || details.ProductName != "ceramic mug" {
		t.Fatalf("unexpected join %+v", details)
	}
	if details.Comment == nil || *details.Comment != comment {
		t.Fatal("comment not preserved in details")
	}

	_, err = f.svc.Details(ctx, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, SubmitReviewInput{CustomerID: f.customer.ID, ItemID: f.item.ID, Rating: 0})
	assertCode(t, err, pkgerrors.CodeValidation)
	_, err = f.svc.Submit(ctx, SubmitReviewInput{CustomerID: f.customer.ID, ItemID: f.item.ID, Rating: 6})
	assertCode(t, err, pkgerrors.CodeValidation)
	_, err = f.svc.Submit(ctx, SubmitReviewInput{CustomerID: uuid.New(), ItemID: f.item.ID, Rating: 3})
	assertCode(t, err, pkgerrors.CodeNotFound)
	_, err = f.svc.Submit(ctx, SubmitReviewInput{CustomerID: f.customer.ID, ItemID: uuid.New(), Rating: 3})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	dto, err := f.svc.Submit(ctx, SubmitReviewInput{CustomerID: f.customer.ID, ItemID: f.item.ID, Rating: 2})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	newRating := 5
	newComment := "changed my mind"
	if err := f.svc.Update(ctx, dto.ID, UpdateReviewInput{Rating: &newRating, Comment: &newComment}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var stored models.Review
	if err := f.db.First(&stored, "id = ?", dto.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Rating != 5 || stored.Comment == nil || *stored.Comment != newComment {
		t.Fatalf("update not applied: %+v", stored)
	}

	bad := 9
	err = f.svc.Update(ctx, dto.ID, UpdateReviewInput{Rating: &bad})
	assertCode(t, err, pkgerrors.CodeValidation)
	err = f.svc.Update(ctx, uuid.New(), UpdateReviewInput{Rating: &newRating})
	assertCode(t, err, pkgerrors.CodeNotFound)

	if err := f.svc.Delete(ctx, dto.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = f.svc.Delete(ctx, dto.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListAndModerate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	other := models.Customer{
		Username:      "fadi77",
		PasswordHash:  "irrelevant",
		FullName:      "Fadi Salem",
		Age:           41,
		Address:       "3 Hamra, Beirut",
		Gender:        enums.GenderMale,
		MaritalStatus: enums.MaritalStatusDivorced,
		WalletBalance: decimal.Zero,
	}
	if err := f.db.Create(&other).Error; err != nil {
		t.Fatalf("seed second customer: %v", err)
	}

	first, err := f.svc.Submit(ctx, SubmitReviewInput{CustomerID: f.customer.ID, ItemID: f.item.ID, Rating: 4})
	if err != nil {
		t.Fatalf("submit first: %v", err)
	}
	if _, err := f.svc.Submit(ctx, SubmitReviewInput{CustomerID: other.ID, ItemID: f.item.ID, Rating: 1}); err != nil {
		t.Fatalf("submit second: %v", err)
	}

	byItem, err := f.svc.ListByItem(ctx, f.item.ID)
	if err != nil {
		t.Fatalf("list by item: %v", err)
	}
	if len(byItem) != 2 {
		t.Fatalf("expected 2 product reviews, got %d", len(byItem))
	}

	byCustomer, err := f.svc.ListByCustomer(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("list by customer: %v", err)
	}
	if len(byCustomer) != 1 || byCustomer[0].ID != first.ID {
		t.Fatalf("expected only the first customer's review, got %+v", byCustomer)
	}

	moderated, err := f.svc.Moderate(ctx, first.ID, true)
	if err != nil {
		t.Fatalf("moderate: %v", err)
	}
	if !moderated.IsFlagged {
		t.Fatal("expected review flagged")
	}

	_, err = f.svc.Moderate(ctx, uuid.New(), true)
	assertCode(t, err, pkgerrors.CodeNotFound)
}
