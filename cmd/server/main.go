package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/franciscoedibles/storefront/internal/cart"
	"github.com/franciscoedibles/storefront/internal/checkout"
	"github.com/franciscoedibles/storefront/internal/config"
	"github.com/franciscoedibles/storefront/internal/coupon"
	"github.com/franciscoedibles/storefront/internal/events"
	"github.com/franciscoedibles/storefront/internal/handlers"
	"github.com/franciscoedibles/storefront/internal/middleware"
	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/mongodb"
	"github.com/franciscoedibles/storefront/internal/pricing"
	"github.com/franciscoedibles/storefront/internal/repository"
	"github.com/franciscoedibles/storefront/internal/service"
	"github.com/franciscoedibles/storefront/pkg/logger"
)

// eventBus is what both the NATS bus and the noop fallback provide
type eventBus interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order) error
	SubscribeOrders(handler func(events.OrderEvent)) (func(), error)
	Close()
}

// stores bundles the persistence collaborator behind its interfaces
type stores struct {
	menu    repository.MenuRepository
	coupons repository.CouponRepository
	chefs   repository.ChefRepository
	orders  repository.OrderRepository
	carts   cart.Persister
	close   func()
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store_driver", cfg.Store.Driver,
		"log_level", cfg.LogLevel,
	)

	// Initialize persistence
	st, err := openStores(cfg, log)
	if err != nil {
		log.Error("failed to initialize persistence", "error", err)
		os.Exit(1)
	}
	defer st.close()

	// Initialize event bus
	bus := openEventBus(cfg, log)
	defer bus.Close()

	// Initialize coupon directory and prime its negative cache
	couponDirectory := coupon.NewDirectory(st.coupons)
	if err := couponDirectory.Reload(context.Background()); err != nil {
		log.Warn("failed to prime coupon directory, lookups fall through to the store", "error", err)
	}

	// Initialize domain services
	pricer := pricing.NewEngine(cfg.Pricing.DeliveryFee)
	cartManager := cart.NewManager(st.carts)
	menuService := service.NewMenuService(st.menu)
	chefService := service.NewChefService(st.chefs)
	orderService := service.NewOrderService(st.orders, bus, log)
	checkoutService := checkout.NewService(st.orders, pricer, bus, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	menuHandler := handlers.NewMenuHandler(menuService, log)
	chefHandler := handlers.NewChefHandler(chefService, log)
	cartHandler := handlers.NewCartHandler(cartManager, menuService, couponDirectory, pricer, log)
	checkoutHandler := handlers.NewCheckoutHandler(cartManager, checkoutService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	couponHandler := handlers.NewCouponHandler(st.coupons, couponDirectory, log)
	feedHandler := handlers.NewFeedHandler(bus, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public catalog
		r.Get("/menu", menuHandler.ListItems)
		r.Get("/menu/{itemId}", menuHandler.GetItem)
		r.Get("/chefs", chefHandler.ListChefs)

		// Session cart and checkout
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session)

			r.Get("/cart", cartHandler.GetCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{itemId}", cartHandler.SetQuantity)
			r.Delete("/cart/items/{itemId}", cartHandler.RemoveItem)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/coupon", cartHandler.ApplyCoupon)
			r.Delete("/cart/coupon", cartHandler.RemoveCoupon)

			r.Post("/checkout", checkoutHandler.Submit)
		})

		// Order tracking
		r.Get("/order/{orderId}", orderHandler.GetOrder)

		// Back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Auth))

			r.Post("/menu", menuHandler.CreateItem)
			r.Put("/menu/{itemId}", menuHandler.UpdateItem)
			r.Delete("/menu/{itemId}", menuHandler.DeleteItem)

			r.Get("/coupons", couponHandler.ListCoupons)
			r.Post("/coupons", couponHandler.CreateCoupon)
			r.Put("/coupons/{couponId}", couponHandler.UpdateCoupon)
			r.Delete("/coupons/{couponId}", couponHandler.DeleteCoupon)

			r.Post("/chefs", chefHandler.CreateChef)
			r.Put("/chefs/{chefId}", chefHandler.UpdateChef)
			r.Delete("/chefs/{chefId}", chefHandler.DeleteChef)

			r.Get("/orders", orderHandler.ListOrders)
			r.Patch("/orders/{orderId}/status", orderHandler.UpdateStatus)
			r.Get("/orders/feed", feedHandler.Stream)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStores selects the persistence collaborator from config
func openStores(cfg *config.Config, log *slog.Logger) (*stores, error) {
	if cfg.Store.Driver == "memory" {
		log.Info("using in-memory stores with seed data")
		return &stores{
			menu:    repository.NewInMemoryMenuRepository(),
			coupons: repository.NewInMemoryCouponRepository(),
			chefs:   repository.NewInMemoryChefRepository(),
			orders:  repository.NewInMemoryOrderRepository(),
			carts:   repository.NewInMemoryCartRepository(),
			close:   func() {},
		}, nil
	}

	log.Info("connecting to mongodb", "uri", cfg.Store.MongoURI, "db", cfg.Store.MongoDB)
	client, err := mongodb.Connect(cfg.Store.MongoURI, cfg.Store.MongoDB)
	if err != nil {
		return nil, err
	}

	couponRepo, err := mongodb.NewCouponRepository(client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &stores{
		menu:    mongodb.NewMenuRepository(client),
		coupons: couponRepo,
		chefs:   mongodb.NewChefRepository(client),
		orders:  mongodb.NewOrderRepository(client),
		carts:   mongodb.NewCartRepository(client),
		close: func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close mongodb connection", "error", err)
			}
		},
	}, nil
}

// openEventBus connects to NATS, falling back to a noop bus so the
// storefront keeps working without a broker.
func openEventBus(cfg *config.Config, log *slog.Logger) eventBus {
	if cfg.NATS.URL == "" {
		log.Info("NATS URL not set, event publishing disabled")
		return events.Noop{}
	}

	bus, err := events.Connect(cfg.NATS.URL, log)
	if err != nil {
		log.Warn("failed to connect to NATS, continuing without events", "error", err)
		return events.Noop{}
	}
	return bus
}
