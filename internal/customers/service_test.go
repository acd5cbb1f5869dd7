package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/pkg/config"
	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/enums"
	pkgerrors "github.com/selimkhoury/storefront-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.InventoryItem{}, &models.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(ServiceParams{Repo: repo, Password: config.PasswordConfig{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:      "marwan22",
		Password:      "Str0ng!pass",
		FullName:      "Marwan Haddad",
		Age:           28,
		Address:       "12 Bliss Street, Beirut",
		Gender:        "Male",
		MaritalStatus: "Single",
	}
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	coded := pkgerrors.As(err)
	if coded == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if coded.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, coded.Code(), err)
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.ID == uuid.Nil {
		t.Fatal("expected assigned customer id")
	}
	if !dto.WalletBalance.IsZero() {
		t.Fatalf("expected zero starting balance, got %s", dto.WalletBalance)
	}

	authed, err := svc.Authenticate(ctx, "marwan22", "Str0ng!pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != dto.ID {
		t.Fatalf("expected authenticated id %s, got %s", dto.ID, authed.ID)
	}

	if _, err := svc.Authenticate(ctx, "marwan22", "wrong-pass1!"); err == nil {
		t.Fatal("expected invalid credentials")
	} else {
		assertCode(t, err, pkgerrors.CodeUnauthorized)
	}

	if _, err := svc.Authenticate(ctx, "nobody", "Str0ng!pass"); err == nil {
		t.Fatal("expected invalid credentials for unknown user")
	} else {
		assertCode(t, err, pkgerrors.CodeUnauthorized)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"short username", func(in *RegisterInput) { in.Username = "ab" }},
		{"username with space", func(in *RegisterInput) { in.Username = "bad name" }},
		{"weak password", func(in *RegisterInput) { in.Password = "password" }},
		{"password missing symbol", func(in *RegisterInput) { in.Password = "Passw0rd1" }},
		{"zero age", func(in *RegisterInput) { in.Age = 0 }},
		{"bad gender", func(in *RegisterInput) { in.Gender = "unknown" }},
		{"bad marital status", func(in *RegisterInput) { in.MaritalStatus = "complicated" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)
			_, err := svc.Register(ctx, input)
			assertCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, validRegisterInput())
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateAllowList(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newName := "Marwan K. Haddad"
	newAge := 29
	married := enums.MaritalStatusMarried
	if err := svc.Update(ctx, dto.ID, UpdateCustomerDTO{
		FullName:      &newName,
		Age:           &newAge,
		MaritalStatus: &married,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.FindByID(ctx, dto.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.FullName != newName || stored.Age != newAge || stored.MaritalStatus != married {
		t.Fatalf("update not applied: %+v", stored)
	}
	if stored.Username != "marwan22" {
		t.Fatalf("username must not change, got %q", stored.Username)
	}

	if err := svc.Update(ctx, dto.ID, UpdateCustomerDTO{}); err == nil {
		t.Fatal("expected error for empty update")
	}
	err = svc.Update(ctx, uuid.New(), UpdateCustomerDTO{FullName: &newName})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestWalletChargeAndDeduct(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChargeWallet(ctx, dto.ID, decimal.NewFromInt(500)); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if err := svc.DeductWallet(ctx, dto.ID, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("deduct: %v", err)
	}

	stored, err := repo.FindByID(ctx, dto.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.WalletBalance.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected balance 200, got %s", stored.WalletBalance)
	}

	err = svc.DeductWallet(ctx, dto.ID, decimal.NewFromInt(300))
	assertCode(t, err, pkgerrors.CodeValidation)

	stored, _ = repo.FindByID(ctx, dto.ID)
	if !stored.WalletBalance.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("failed deduct must not mutate balance, got %s", stored.WalletBalance)
	}

	err = svc.ChargeWallet(ctx, dto.ID, decimal.Zero)
	assertCode(t, err, pkgerrors.CodeValidation)
	err = svc.ChargeWallet(ctx, uuid.New(), decimal.NewFromInt(10))
	assertCode(t, err, pkgerrors.CodeNotFound)
	err = svc.DeductWallet(ctx, uuid.New(), decimal.NewFromInt(10))
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteRestrictedBySales(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	item := models.InventoryItem{
		Name:         "walnut shelf",
		Category:     enums.ItemCategoryAccessories,
		PricePerItem: decimal.NewFromInt(40),
		StockCount:   3,
	}
	if err := repo.db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	sale := models.Sale{
		CustomerID: dto.ID,
		ItemID:     item.ID,
		Quantity:   1,
		TotalPrice: decimal.NewFromInt(40),
	}
	if err := repo.db.Create(&sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	err = svc.Delete(ctx, dto.ID)
	assertCode(t, err, pkgerrors.CodeConflict)

	if err := repo.db.Delete(&sale).Error; err != nil {
		t.Fatalf("clear sale: %v", err)
	}
	if err := svc.Delete(ctx, dto.ID); err != nil {
		t.Fatalf("delete after clearing sales: %v", err)
	}

	err = svc.Delete(ctx, dto.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}
