package ports

import (
	"context"

	"order-portal/internal/features/cart/domain"
	catalog "order-portal/internal/features/catalog/domain"
	clients "order-portal/internal/features/clients/domain"
	orders "order-portal/internal/features/orders/domain"
)

// CartService defines the primary port for a client's working cart.
type CartService interface {
	Get(ctx context.Context, clientID uint) (*domain.Cart, error)
	AddProduct(ctx context.Context, clientID, productID uint) (*domain.Cart, error)
	SetQuantity(ctx context.Context, clientID, productID uint, branch orders.Branch, raw any) (*domain.Cart, error)
	RemoveProduct(ctx context.Context, clientID, productID uint) (*domain.Cart, error)
	Clear(ctx context.Context, clientID uint) error
	Submit(ctx context.Context, clientID uint, comment, device *string) (*orders.Order, error)
}

// CartRepository defines the secondary port for cart storage.
type CartRepository interface {
	// Get returns nil, nil when the client has no stored cart.
	Get(ctx context.Context, clientID uint) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, clientID uint) error
}

// ProductReader resolves catalog products.
type ProductReader interface {
	GetByID(ctx context.Context, id uint) (*catalog.Product, error)
}

// ClientReader resolves client accounts.
type ClientReader interface {
	GetByID(ctx context.Context, id uint) (*clients.Client, error)
}

// OrderCreator submits finished carts.
type OrderCreator interface {
	Create(ctx context.Context, draft orders.Draft) (*orders.Order, error)
}
