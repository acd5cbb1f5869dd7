package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/selimkhoury/storefront-backend/api/controllers"
	"github.com/selimkhoury/storefront-backend/api/middleware"
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
	"github.com/selimkhoury/storefront-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth            auth.Service
	Customers       customers.Service
	Inventory       inventory.Service
	Sales           sales.Service
	Reviews         reviews.Service
	Cart            cart.Service
	Wishlist        wishlist.Service
	Recommendations recommendations.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/customers", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.CustomerRegister(svcs.Customers, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.CustomerLogin(svcs.Auth, logg))
		r.Get("/", controllers.CustomerList(svcs.Customers, logg))
		r.Get("/{username}", controllers.CustomerGetByUsername(svcs.Customers, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", controllers.CustomerLogout(svcs.Auth, logg))
			r.Put("/{id}", controllers.CustomerUpdate(svcs.Customers, logg))
			r.Delete("/{id}", controllers.CustomerDelete(svcs.Customers, logg))
			r.Post("/{id}/charge", controllers.CustomerChargeWallet(svcs.Customers, logg))
			r.Post("/{id}/deduct", controllers.CustomerDeductWallet(svcs.Customers, logg))
		})
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", controllers.InventoryList(svcs.Inventory, logg))
		r.Get("/{id}", controllers.InventoryGet(svcs.Inventory, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/add", controllers.InventoryAdd(svcs.Inventory, logg))
			r.Put("/{id}", controllers.InventoryUpdate(svcs.Inventory, logg))
			r.Post("/{id}/deduct", controllers.InventoryDeductStock(svcs.Inventory, logg))
		})
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/goods", controllers.SalesListGoods(svcs.Sales, logg))
		r.Get("/goods/{id}", controllers.SalesGoodDetails(svcs.Sales, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/sale", controllers.SalesExecute(svcs.Sales, logg))
			r.Get("/history", controllers.SalesPurchaseHistory(svcs.Sales, logg))
		})
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/product/{id}", controllers.ReviewsByProduct(svcs.Reviews, logg))
		r.Get("/customer/{id}", controllers.ReviewsByCustomer(svcs.Reviews, logg))
		r.Get("/details/{id}", controllers.ReviewDetails(svcs.Reviews, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/submit", controllers.ReviewSubmit(svcs.Reviews, logg))
			r.Put("/update/{id}", controllers.ReviewUpdate(svcs.Reviews, logg))
			r.Delete("/delete/{id}", controllers.ReviewDelete(svcs.Reviews, logg))
			r.Patch("/moderate/{id}", controllers.ReviewModerate(svcs.Reviews, logg))
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/{customer_id}/cart", controllers.CartAdd(svcs.Cart, logg))
		r.Get("/{customer_id}/cart", controllers.CartView(svcs.Cart, logg))
		r.Delete("/{customer_id}/cart/{item_id}", controllers.CartRemove(svcs.Cart, logg))
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/{customer_id}/wishlist", controllers.WishlistAdd(svcs.Wishlist, logg))
		r.Get("/{customer_id}/wishlist", controllers.WishlistView(svcs.Wishlist, logg))
		r.Delete("/{customer_id}/wishlist/{item_id}", controllers.WishlistRemove(svcs.Wishlist, logg))
	})

	r.Get("/recommendations/recommend/{customer_id}", controllers.Recommend(svcs.Recommendations, logg))

	return r
}
