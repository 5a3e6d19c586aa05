package ports

import (
	"context"

	catalog "order-portal/internal/features/catalog/domain"
	clients "order-portal/internal/features/clients/domain"
	"order-portal/internal/features/orders/domain"
)

// OrderService defines the primary port for order creation and lifecycle.
type OrderService interface {
	Create(ctx context.Context, draft domain.Draft) (*domain.Order, error)
	List(ctx context.Context, clientID *uint) ([]domain.Order, error)
	Get(ctx context.Context, id uint) (*domain.Order, error)
	// Advance moves the order to the next status.
	Advance(ctx context.Context, id uint) (*domain.Order, error)
	// Transition moves the order to target, which must be the next status.
	Transition(ctx context.Context, id uint, target domain.Status) (*domain.Order, error)
	ReviseItems(ctx context.Context, id uint, lines []domain.Line) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
}

// OrderRepository defines the secondary port for order storage.
// This is a Secondary Port (Driven Port).
type OrderRepository interface {
	// Create stores the order and its items atomically.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	// List returns orders newest first, optionally for one client.
	List(ctx context.Context, clientID *uint) ([]domain.Order, error)
	// UpdateStatus changes the status only if it still equals from.
	UpdateStatus(ctx context.Context, id uint, from, to domain.Status) error
	// ReplaceItems swaps the item set of a pending order atomically.
	ReplaceItems(ctx context.Context, id uint, items []domain.Item) error
	// DeleteShipped removes a shipped order and its items atomically.
	DeleteShipped(ctx context.Context, id uint) error
}

// ProductLookup resolves catalog products by SKU in one batch.
type ProductLookup interface {
	FindBySKUs(ctx context.Context, skus []string) ([]catalog.Product, error)
}

// ClientLookup resolves the client an order belongs to.
type ClientLookup interface {
	GetByID(ctx context.Context, id uint) (*clients.Client, error)
	FirstActive(ctx context.Context) (*clients.Client, error)
}
