package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/selimkhoury/storefront-backend/api/routes"
	"github.com/selimkhoury/storefront-backend/internal/auth"
	"github.com/selimkhoury/storefront-backend/internal/cart"
	"github.com/selimkhoury/storefront-backend/internal/customers"
	"github.com/selimkhoury/storefront-backend/internal/inventory"
	"github.com/selimkhoury/storefront-backend/internal/recommendations"
	"github.com/selimkhoury/storefront-backend/internal/reviews"
	"github.com/selimkhoury/storefront-backend/internal/sales"
	"github.com/selimkhoury/storefront-backend/internal/wishlist"
	"github.com/selimkhoury/storefront-backend/pkg/auth/session"
	"github.com/selimkhoury/storefront-backend/pkg/config"
	"github.com/selimkhoury/storefront-backend/pkg/db"
	"github.com/selimkhoury/storefront-backend/pkg/logger"
	"github.com/selimkhoury/storefront-backend/pkg/migrate"
	"github.com/selimkhoury/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	customerRepo := customers.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())

	customerSvc, err := customers.NewService(customers.ServiceParams{
		Repo:     customerRepo,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}
	inventorySvc, err := inventory.NewService(inventory.ServiceParams{Repo: inventoryRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	salesSvc, err := sales.NewService(sales.ServiceParams{
		Tx:            dbClient,
		SalesRepo:     sales.NewRepository(dbClient.DB()),
		CustomerRepo:  customerRepo,
		InventoryRepo: inventoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}
	reviewSvc, err := reviews.NewService(reviews.ServiceParams{
		Repo:          reviews.NewRepository(dbClient.DB()),
		CustomerRepo:  customerRepo,
		InventoryRepo: inventoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}
	cartSvc, err := cart.NewService(cart.ServiceParams{
		Repo:          cart.NewRepository(dbClient.DB()),
		CustomerRepo:  customerRepo,
		InventoryRepo: inventoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	wishlistSvc, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:          wishlist.NewRepository(dbClient.DB()),
		CustomerRepo:  customerRepo,
		InventoryRepo: inventoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}
	recommendSvc, err := recommendations.NewService(recommendations.ServiceParams{
		Scorer:       recommendations.NewCoPurchaseScorer(dbClient.DB()),
		CustomerRepo: customerRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create recommendations service", err)
		os.Exit(1)
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		Customers: customerSvc,
		Sessions:  sessionManager,
		JWT:       cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, routes.Services{
			Auth:            authSvc,
			Customers:       customerSvc,
			Inventory:       inventorySvc,
			Sales:           salesSvc,
			Reviews:         reviewSvc,
			Cart:            cartSvc,
			Wishlist:        wishlistSvc,
			Recommendations: recommendSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
