package main

import (
	"context"
	"log"

	"order-portal/internal/core/config"
	"order-portal/internal/core/database"
	"order-portal/internal/core/logger"
	catalogadapter "order-portal/internal/features/catalog/adapters"
	"order-portal/internal/features/catalog/seed"

	"go.uber.org/zap"
)

// Loads the base catalog. Safe to run repeatedly; products are matched by SKU.
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Named("seed")
	res, err := run(context.Background(), cfg)
	if err != nil {
		l.Fatal("Seeding catalog failed", zap.Error(err))
	}
	l.Info("Catalog seeded",
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
	)
}

func run(ctx context.Context, cfg *config.AppConfig) (seed.Result, error) {
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return seed.Result{}, err
	}
	defer db.Close()

	if err := db.AutoMigrate(ctx); err != nil {
		return seed.Result{}, err
	}
	return seed.Run(ctx, catalogadapter.NewGormProductRepository(db), seed.BaseProducts())
}
