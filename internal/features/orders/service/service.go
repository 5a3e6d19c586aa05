package service

import (
	"context"
	"errors"
	"fmt"

	"order-portal/internal/core/apperror"
	"order-portal/internal/core/logger"
	"order-portal/internal/core/metrics"
	catalog "order-portal/internal/features/catalog/domain"
	clients "order-portal/internal/features/clients/domain"
	"order-portal/internal/features/orders/domain"
	"order-portal/internal/features/orders/ports"

	"go.uber.org/zap"
)

// Options tunes the order service.
type Options struct {
	// AllowDefaultClient lets orders without a client id fall back to the
	// first active client. Meant for development only.
	AllowDefaultClient bool
	Metrics            *metrics.OrderMetrics
}

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	orders   ports.OrderRepository
	products ports.ProductLookup
	clients  ports.ClientLookup
	opts     Options
	log      *zap.Logger
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(orders ports.OrderRepository, products ports.ProductLookup, clients ports.ClientLookup, opts Options) *OrderServiceImpl {
	return &OrderServiceImpl{
		orders:   orders,
		products: products,
		clients:  clients,
		opts:     opts,
		log:      logger.Named("orders"),
	}
}

// Create validates the draft against the catalog and the client, then stores
// the order with status pending.
func (s *OrderServiceImpl) Create(ctx context.Context, draft domain.Draft) (*domain.Order, error) {
	lines, err := domain.FilterLines(draft.Lines)
	if err != nil {
		return nil, s.fail("create", mapError(err, "validating order"))
	}

	bySKU, err := s.resolveProducts(ctx, lines)
	if err != nil {
		return nil, s.fail("create", err)
	}

	client, err := s.resolveClient(ctx, draft.ClientID)
	if err != nil {
		return nil, s.fail("create", err)
	}

	items, err := domain.BuildItems(lines, bySKU, client.BranchCount)
	if err != nil {
		return nil, s.fail("create", mapError(err, "building items"))
	}

	order := &domain.Order{
		ClientID: client.ID,
		Comment:  domain.TrimOptional(draft.Comment),
		Device:   domain.TrimOptional(draft.Device),
		Status:   domain.StatusPending,
		Items:    items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, s.fail("create", apperror.Internal(err, "saving order"))
	}

	s.opts.Metrics.ObserveCreated(len(order.Items))
	s.log.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("client_id", client.ID),
		zap.Int("items", len(order.Items)),
	)

	order.Client = client
	return order, nil
}

// List returns orders newest first.
func (s *OrderServiceImpl) List(ctx context.Context, clientID *uint) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, clientID)
	if err != nil {
		return nil, apperror.Internal(err, "listing orders")
	}
	return orders, nil
}

// Get returns a single order with its client and items.
func (s *OrderServiceImpl) Get(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "fetching order")
	}
	return order, nil
}

// Advance moves the order one step forward.
func (s *OrderServiceImpl) Advance(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("transition", mapError(err, "fetching order"))
	}

	next, err := order.Status.Next()
	if err != nil {
		return nil, s.fail("transition", apperror.StateConflict(err, fmt.Sprintf("order is already %s", order.Status)))
	}
	return s.move(ctx, order, next)
}

// Transition moves the order to target when target is the next status.
func (s *OrderServiceImpl) Transition(ctx context.Context, id uint, target domain.Status) (*domain.Order, error) {
	if !target.Valid() {
		return nil, s.fail("transition", apperror.Validation(domain.ErrInvalidStatus, domain.ErrInvalidStatus.Error()))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("transition", mapError(err, "fetching order"))
	}

	next, err := order.Status.Next()
	if err != nil || next != target {
		return nil, s.fail("transition", apperror.StateConflict(domain.ErrInvalidTransition,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target)))
	}
	return s.move(ctx, order, next)
}

func (s *OrderServiceImpl) move(ctx context.Context, order *domain.Order, next domain.Status) (*domain.Order, error) {
	from := order.Status
	if err := s.orders.UpdateStatus(ctx, order.ID, from, next); err != nil {
		return nil, s.fail("transition", mapError(err, "updating order status"))
	}

	s.opts.Metrics.IncTransition(string(from), string(next))
	s.log.Info("Order status changed",
		zap.Uint("order_id", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
	)

	updated, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, mapError(err, "fetching order")
	}
	return updated, nil
}

// ReviseItems replaces the items of a pending order, applying the same checks
// as creation with the order's own client.
func (s *OrderServiceImpl) ReviseItems(ctx context.Context, id uint, lines []domain.Line) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("revise", mapError(err, "fetching order"))
	}
	if order.Status != domain.StatusPending {
		return nil, s.fail("revise", apperror.StateConflict(domain.ErrNotEditable, domain.ErrNotEditable.Error()))
	}

	kept, err := domain.FilterLines(lines)
	if err != nil {
		return nil, s.fail("revise", mapError(err, "validating items"))
	}

	bySKU, err := s.resolveProducts(ctx, kept)
	if err != nil {
		return nil, s.fail("revise", err)
	}

	var branchCount int
	if order.Client != nil {
		branchCount = order.Client.BranchCount
	} else {
		client, err := s.clients.GetByID(ctx, order.ClientID)
		if err != nil {
			return nil, s.fail("revise", mapError(err, "fetching client"))
		}
		branchCount = client.BranchCount
	}

	items, err := domain.BuildItems(kept, bySKU, branchCount)
	if err != nil {
		return nil, s.fail("revise", mapError(err, "building items"))
	}

	if err := s.orders.ReplaceItems(ctx, id, items); err != nil {
		return nil, s.fail("revise", mapError(err, "replacing items"))
	}

	s.log.Info("Order items revised", zap.Uint("order_id", id), zap.Int("items", len(items)))
	return s.Get(ctx, id)
}

// Delete removes a shipped order.
func (s *OrderServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.orders.DeleteShipped(ctx, id); err != nil {
		return s.fail("delete", mapError(err, "deleting order"))
	}
	s.opts.Metrics.IncDeleted()
	s.log.Info("Order deleted", zap.Uint("order_id", id))
	return nil
}

func (s *OrderServiceImpl) resolveProducts(ctx context.Context, lines []domain.Line) (map[string]catalog.Product, error) {
	products, err := s.products.FindBySKUs(ctx, domain.DistinctSKUs(lines))
	if err != nil {
		return nil, apperror.Internal(err, "fetching products")
	}
	bySKU, err := domain.IndexProducts(lines, products)
	if err != nil {
		return nil, mapError(err, "resolving products")
	}
	return bySKU, nil
}

func (s *OrderServiceImpl) resolveClient(ctx context.Context, clientID *uint) (*clients.Client, error) {
	if clientID == nil {
		if !s.opts.AllowDefaultClient {
			return nil, apperror.Validation(domain.ErrClientRequired, domain.ErrClientRequired.Error())
		}
		client, err := s.clients.FirstActive(ctx)
		if err != nil {
			return nil, mapError(err, "fetching default client")
		}
		return client, nil
	}

	client, err := s.clients.GetByID(ctx, *clientID)
	if err != nil {
		return nil, mapError(err, "fetching client")
	}
	if !client.Active {
		return nil, apperror.StateConflict(clients.ErrClientInactive, clients.ErrClientInactive.Error())
	}
	return client, nil
}

func (s *OrderServiceImpl) fail(op string, err error) error {
	s.opts.Metrics.IncFailure(op, string(apperror.CodeOf(err)))
	return err
}

func mapError(err error, op string) error {
	if apperror.As(err) != nil {
		return err
	}

	var unknown *domain.UnknownSKUError
	var outOfStock *domain.OutOfStockError
	switch {
	case errors.As(err, &unknown):
		return apperror.Validation(err, domain.ErrUnknownSKU.Error()).WithDetails(unknown.SKUs)
	case errors.As(err, &outOfStock):
		return apperror.StateConflict(err, domain.ErrOutOfStock.Error()).WithDetails(outOfStock.SKUs)
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrQuantityTooLarge),
		errors.Is(err, domain.ErrNoValidQuantities),
		errors.Is(err, domain.ErrClientRequired),
		errors.Is(err, domain.ErrInvalidStatus):
		return apperror.Validation(err, rootMessage(err))
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, clients.ErrClientNotFound):
		return apperror.NotFound(err, rootMessage(err))
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConcurrentUpdate),
		errors.Is(err, domain.ErrNotDeletable),
		errors.Is(err, domain.ErrNotEditable),
		errors.Is(err, clients.ErrClientInactive),
		errors.Is(err, clients.ErrNoActiveClient):
		return apperror.StateConflict(err, rootMessage(err))
	default:
		return apperror.Internal(err, op)
	}
}

// rootMessage returns the innermost error text, i.e. the sentinel message.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
