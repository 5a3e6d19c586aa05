package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-portal/internal/core/cache"
	"order-portal/internal/core/config"
	"order-portal/internal/core/database"
	"order-portal/internal/core/logger"
	"order-portal/internal/core/metrics"
	"order-portal/internal/core/server"
	cartadapter "order-portal/internal/features/cart/adapters"
	carthandler "order-portal/internal/features/cart/handler"
	cartservice "order-portal/internal/features/cart/service"
	catalogadapter "order-portal/internal/features/catalog/adapters"
	cataloghandler "order-portal/internal/features/catalog/handler"
	catalogservice "order-portal/internal/features/catalog/service"
	clientadapter "order-portal/internal/features/clients/adapters"
	clienthandler "order-portal/internal/features/clients/handler"
	clientservice "order-portal/internal/features/clients/service"
	favoritesadapter "order-portal/internal/features/favorites/adapters"
	favoriteshandler "order-portal/internal/features/favorites/handler"
	favoritesservice "order-portal/internal/features/favorites/service"
	labelshandler "order-portal/internal/features/labels/handler"
	orderadapter "order-portal/internal/features/orders/adapters"
	orderhandler "order-portal/internal/features/orders/handler"
	orderservice "order-portal/internal/features/orders/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Order Portal API
// @version 1.0
// @description B2B ordering portal: catalog, client carts split across branches, and order lifecycle.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	// Initialize Database
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		l.Fatal("Database connection failed", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			l.Fatal("Database migration failed", zap.Error(err))
		}
	}

	// Initialize Redis and run Health Check
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Redis configuration invalid", zap.Error(err))
	}
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Repositories
	productRepo := catalogadapter.NewGormProductRepository(db)
	clientRepo := clientadapter.NewGormClientRepository(db)
	orderRepo := orderadapter.NewGormOrderRepository(db)
	favoritesRepo := favoritesadapter.NewRedisFavoritesRepository(redisCache)
	cartRepo := cartadapter.NewRedisCartRepository(redisCache, cfg.Redis.CartTTL())

	// Services
	productSvc := catalogservice.NewProductService(productRepo, favoritesRepo)
	clientSvc := clientservice.NewClientService(clientRepo)
	orderSvc := orderservice.NewOrderService(orderRepo, productRepo, clientRepo, orderservice.Options{
		AllowDefaultClient: cfg.Orders.AllowDefaultClient,
		Metrics:            metrics.NewOrderMetrics(registry),
	})
	favoritesSvc := favoritesservice.NewFavoritesService(favoritesRepo, productRepo)
	cartSvc := cartservice.NewCartService(cartRepo, productRepo, clientRepo, orderSvc)

	// Handlers
	productHdl := cataloghandler.NewProductHandler(productSvc)
	clientHdl := clienthandler.NewClientHandler(clientSvc)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)
	cartHdl := carthandler.NewCartHandler(cartSvc)
	favoritesHdl := favoriteshandler.NewFavoritesHandler(favoritesSvc)
	labelsHdl := labelshandler.NewLabelsHandler()

	srv := server.New(cfg, registry)
	srv.AddHealthCheck("database", db)
	srv.AddHealthCheck("redis", redisCache)

	// Register Routes
	srv.App.Get("/labels", labelsHdl.GetLabels)

	srv.App.Get("/products", productHdl.ListProducts)
	srv.App.Get("/products/:id", productHdl.GetProduct)
	srv.App.Post("/products", productHdl.CreateProduct)
	srv.App.Put("/products/:id", productHdl.UpdateProduct)
	srv.App.Delete("/products/:id", productHdl.DeleteProduct)

	srv.App.Get("/clients", clientHdl.ListClients)
	srv.App.Post("/clients", clientHdl.CreateClient)
	srv.App.Put("/clients/:id", clientHdl.UpdateClient)
	srv.App.Delete("/clients/:id", clientHdl.DeleteClient)

	srv.App.Get("/clients/:id/cart", cartHdl.GetCart)
	srv.App.Delete("/clients/:id/cart", cartHdl.ClearCart)
	srv.App.Post("/clients/:id/cart/items", cartHdl.AddItem)
	srv.App.Put("/clients/:id/cart/items/:productId", cartHdl.SetQuantity)
	srv.App.Delete("/clients/:id/cart/items/:productId", cartHdl.RemoveItem)
	srv.App.Post("/clients/:id/cart/submit", cartHdl.SubmitCart)

	srv.App.Post("/orders", orderHdl.CreateOrder)
	srv.App.Get("/orders", orderHdl.ListOrders)
	srv.App.Get("/orders/:id", orderHdl.GetOrder)
	srv.App.Patch("/orders/:id/status", orderHdl.UpdateStatus)
	srv.App.Put("/orders/:id/items", orderHdl.ReviseItems)
	srv.App.Delete("/orders/:id", orderHdl.DeleteOrder)

	srv.App.Get("/favorites/:owner", favoritesHdl.ListFavorites)
	srv.App.Get("/favorites/:owner/:productId", favoritesHdl.GetFavorite)
	srv.App.Put("/favorites/:owner/:productId", favoritesHdl.AddFavorite)
	srv.App.Delete("/favorites/:owner/:productId", favoritesHdl.RemoveFavorite)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		l.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			l.Error("Server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = multierr.Combine(
		srv.Shutdown(shutdownCtx),
		db.Close(),
		redisCache.Close(),
	)
	if err != nil {
		l.Error("Shutdown finished with errors", zap.Error(err))
		return
	}
	l.Info("Shutdown complete")
}
