package service

import (
	"context"
	"errors"
	"time"

	"order-portal/internal/core/apperror"
	"order-portal/internal/core/logger"
	"order-portal/internal/features/cart/domain"
	"order-portal/internal/features/cart/ports"
	catalog "order-portal/internal/features/catalog/domain"
	clients "order-portal/internal/features/clients/domain"
	orders "order-portal/internal/features/orders/domain"

	"go.uber.org/zap"
)

// CartServiceImpl implements ports.CartService.
type CartServiceImpl struct {
	repo     ports.CartRepository
	products ports.ProductReader
	clients  ports.ClientReader
	orders   ports.OrderCreator
	now      func() time.Time
	log      *zap.Logger
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(repo ports.CartRepository, products ports.ProductReader, clients ports.ClientReader, orders ports.OrderCreator) *CartServiceImpl {
	return &CartServiceImpl{
		repo:     repo,
		products: products,
		clients:  clients,
		orders:   orders,
		now:      time.Now,
		log:      logger.Named("cart"),
	}
}

// Get returns the client's cart, empty when none is stored.
func (s *CartServiceImpl) Get(ctx context.Context, clientID uint) (*domain.Cart, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, client)
}

// AddProduct adds one unit of a product to branch A.
func (s *CartServiceImpl) AddProduct(ctx context.Context, clientID, productID uint) (*domain.Cart, error) {
	return s.mutate(ctx, clientID, func(cart *domain.Cart) error {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return mapError(err, "fetching product")
		}
		if !product.Orderable() {
			return mapError(domain.ErrOutOfStock, "adding product")
		}
		cart.Add(product.ID, product.SKU)
		return nil
	})
}

// SetQuantity stores the quantity of one branch of a cart line.
func (s *CartServiceImpl) SetQuantity(ctx context.Context, clientID, productID uint, branch orders.Branch, raw any) (*domain.Cart, error) {
	if branch.Position() == 0 {
		return nil, mapError(orders.ErrInvalidBranch, "setting quantity")
	}
	return s.mutate(ctx, clientID, func(cart *domain.Cart) error {
		if !cart.SetQuantity(productID, branch, raw) {
			return mapError(domain.ErrLineNotFound, "setting quantity")
		}
		return nil
	})
}

// RemoveProduct drops a product from the cart.
func (s *CartServiceImpl) RemoveProduct(ctx context.Context, clientID, productID uint) (*domain.Cart, error) {
	return s.mutate(ctx, clientID, func(cart *domain.Cart) error {
		cart.Remove(productID)
		return nil
	})
}

// Clear discards the stored cart.
func (s *CartServiceImpl) Clear(ctx context.Context, clientID uint) error {
	if _, err := s.client(ctx, clientID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, clientID); err != nil {
		return apperror.Wrap(apperror.CodeDependency, err, "clearing cart")
	}
	return nil
}

// Submit creates an order from the cart. The cart is cleared only when the
// order was stored.
func (s *CartServiceImpl) Submit(ctx context.Context, clientID uint, comment, device *string) (*orders.Order, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	cart, err := s.load(ctx, client)
	if err != nil {
		return nil, err
	}
	if err := s.refreshSKUs(ctx, cart); err != nil {
		return nil, err
	}

	id := client.ID
	order, err := s.orders.Create(ctx, orders.Draft{
		ClientID: &id,
		Comment:  comment,
		Device:   device,
		Lines:    cart.OrderLines(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, clientID); err != nil {
		s.log.Warn("Order created but cart was not cleared",
			zap.Uint("client_id", clientID),
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}
	return order, nil
}

// refreshSKUs replaces the SKU stored with each line by the product's current
// one. Lines whose product is gone keep their SKU so the order is rejected
// as unknown SKU.
func (s *CartServiceImpl) refreshSKUs(ctx context.Context, cart *domain.Cart) error {
	for i := range cart.Lines {
		product, err := s.products.GetByID(ctx, cart.Lines[i].ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return apperror.Internal(err, "fetching product")
		}
		cart.Lines[i].SKU = product.SKU
	}
	return nil
}

func (s *CartServiceImpl) mutate(ctx context.Context, clientID uint, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, mapError(clients.ErrClientInactive, "updating cart")
	}

	cart, err := s.load(ctx, client)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}

	cart.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, apperror.Wrap(apperror.CodeDependency, err, "saving cart")
	}
	return cart, nil
}

func (s *CartServiceImpl) client(ctx context.Context, clientID uint) (*clients.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, mapError(err, "fetching client")
	}
	return client, nil
}

// load reads the stored cart and aligns it with the client's current branch count.
func (s *CartServiceImpl) load(ctx context.Context, client *clients.Client) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, client.ID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeDependency, err, "loading cart")
	}
	if cart == nil {
		return domain.New(client.ID, client.BranchCount), nil
	}
	if cart.BranchCount != client.BranchCount {
		cart.ApplyBranchCount(client.BranchCount)
	}
	return cart, nil
}

func mapError(err error, op string) error {
	if apperror.As(err) != nil {
		return err
	}

	switch {
	case errors.Is(err, orders.ErrInvalidBranch):
		return apperror.Validation(err, err.Error())
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, clients.ErrClientNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		return apperror.NotFound(err, err.Error())
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, clients.ErrClientInactive):
		return apperror.StateConflict(err, err.Error())
	default:
		return apperror.Internal(err, op)
	}
}
