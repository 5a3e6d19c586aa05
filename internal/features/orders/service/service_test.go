package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"order-portal/internal/core/apperror"
	"order-portal/internal/core/database"
	"order-portal/internal/core/database/dbtest"
	"order-portal/internal/core/database/models"
	"order-portal/internal/core/metrics"
	catalogadapters "order-portal/internal/features/catalog/adapters"
	catalog "order-portal/internal/features/catalog/domain"
	clientadapters "order-portal/internal/features/clients/adapters"
	clients "order-portal/internal/features/clients/domain"
	"order-portal/internal/features/orders/adapters"
	"order-portal/internal/features/orders/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	db       *database.Client
	service  *OrderServiceImpl
	products *catalogadapters.GormProductRepository
	clients  *clientadapters.GormClientRepository
	registry *prometheus.Registry
}

func newEnv(t *testing.T, allowDefault bool) *env {
	t.Helper()
	db := dbtest.New(t)
	reg := prometheus.NewRegistry()
	products := catalogadapters.NewGormProductRepository(db)
	clientRepo := clientadapters.NewGormClientRepository(db)

	svc := NewOrderService(adapters.NewGormOrderRepository(db), products, clientRepo, Options{
		AllowDefaultClient: allowDefault,
		Metrics:            metrics.NewOrderMetrics(reg),
	})
	return &env{db: db, service: svc, products: products, clients: clientRepo, registry: reg}
}

func (e *env) addProduct(t *testing.T, sku string, status catalog.Status, eta *string) *catalog.Product {
	t.Helper()
	p := &catalog.Product{SKU: sku, Brand: "Aisin", Description: "Part " + sku, Category: catalog.CategoryBrakeMaster, Status: status, ETA: eta}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *env) addClient(t *testing.T, code string, active bool, branches int) *clients.Client {
	t.Helper()
	c := &clients.Client{Code: code, Name: code, Active: active, BranchCount: branches}
	require.NoError(t, e.clients.Create(context.Background(), c))
	return c
}

func (e *env) orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.DB(context.Background()).Model(&models.Order{}).Count(&n).Error)
	return n
}

func line(sku string, a, b, c int) domain.Line {
	return domain.Line{SKU: sku, Quantities: domain.Quantities{A: a, B: b, C: c}}
}

func TestOrderService_Create_BranchMaskedReservation(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	eta := "June"
	e.addProduct(t, "47201-60460", catalog.StatusIncoming, &eta)
	client := e.addClient(t, "ACME", true, 2)

	device := " Tablet "
	order, err := e.service.Create(ctx, domain.Draft{
		ClientID: &client.ID,
		Device:   &device,
		Lines:    []domain.Line{line("47201-60460", 2, 1, 0)},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	require.NotNil(t, order.Client)
	assert.Equal(t, client.ID, order.Client.ID)
	require.NotNil(t, order.Device)
	assert.Equal(t, "Tablet", *order.Device)
	assert.Nil(t, order.Comment)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, domain.Quantities{A: 2, B: 1, C: 0}, item.Quantities)
	assert.Equal(t, domain.ItemTypeReservation, item.Type)
	assert.Equal(t, "Incoming", *item.StatusText)
	assert.Equal(t, "June", *item.ETAText)

	assert.Equal(t, 1.0, e.counterValue(t, "orders_created_total"))
}

func (e *env) counterValue(t *testing.T, name string) float64 {
	t.Helper()
	mfs, err := e.registry.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestOrderService_Create_ThirdBranchForcedToZero(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	e.addProduct(t, "BP-1", catalog.StatusAvailable, nil)
	e.addProduct(t, "BP-2", catalog.StatusAvailable, nil)
	client := e.addClient(t, "ONE", true, 1)

	order, err := e.service.Create(ctx, domain.Draft{
		ClientID: &client.ID,
		Lines:    []domain.Line{line("BP-1", 1, 4, 4), line("BP-2", 0, 3, 0)},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "BP-1", order.Items[0].SKU)
	assert.Equal(t, domain.Quantities{A: 1}, order.Items[0].Quantities)
	assert.Equal(t, domain.ItemTypeNormal, order.Items[0].Type)
	assert.Nil(t, order.Items[0].ETAText)
}

func TestOrderService_Create_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		lines   []domain.Line
		prepare func(t *testing.T, e *env)
		client  func(t *testing.T, e *env) *uint
		code    apperror.Code
		target  error
		details any
	}{
		{
			name:   "empty order",
			lines:  nil,
			code:   apperror.CodeValidation,
			target: domain.ErrEmptyOrder,
		},
		{
			name:   "negative quantity",
			lines:  []domain.Line{line("BP-1", 1, -1, 0)},
			code:   apperror.CodeValidation,
			target: domain.ErrNegativeQuantity,
		},
		{
			name:   "quantity above int32",
			lines:  []domain.Line{line("BP-1", math.MaxInt, 1, 0), line("BP-1", 1, 0, 0)},
			code:   apperror.CodeValidation,
			target: domain.ErrQuantityTooLarge,
		},
		{
			name:  "out of stock",
			lines: []domain.Line{line("GONE-2", 1, 0, 0), line("BP-1", 1, 0, 0), line("GONE-1", 1, 0, 0)},
			prepare: func(t *testing.T, e *env) {
				e.addProduct(t, "GONE-1", catalog.StatusOutOfStock, nil)
				e.addProduct(t, "GONE-2", catalog.StatusOutOfStock, nil)
			},
			code:    apperror.CodeStateConflict,
			target:  domain.ErrOutOfStock,
			details: []string{"GONE-1", "GONE-2"},
		},
		{
			name:   "all zero",
			lines:  []domain.Line{line("BP-1", 0, 0, 0)},
			code:   apperror.CodeValidation,
			target: domain.ErrNoValidQuantities,
		},
		{
			name:    "unknown sku",
			lines:   []domain.Line{line("DOES-NOT-EXIST", 1, 0, 0), line("BP-1", 1, 0, 0), line("ALSO-MISSING", 2, 0, 0)},
			code:    apperror.CodeValidation,
			target:  domain.ErrUnknownSKU,
			details: []string{"ALSO-MISSING", "DOES-NOT-EXIST"},
		},
		{
			name:   "masked to nothing",
			lines:  []domain.Line{line("BP-1", 0, 2, 0)},
			code:   apperror.CodeValidation,
			target: domain.ErrNoValidQuantities,
		},
		{
			name:   "missing client id",
			lines:  []domain.Line{line("BP-1", 1, 0, 0)},
			client: func(t *testing.T, e *env) *uint { return nil },
			code:   apperror.CodeValidation,
			target: domain.ErrClientRequired,
		},
		{
			name:  "unknown client",
			lines: []domain.Line{line("BP-1", 1, 0, 0)},
			client: func(t *testing.T, e *env) *uint {
				id := uint(999)
				return &id
			},
			code:   apperror.CodeNotFound,
			target: clients.ErrClientNotFound,
		},
		{
			name:  "inactive client",
			lines: []domain.Line{line("BP-1", 1, 0, 0)},
			client: func(t *testing.T, e *env) *uint {
				return &e.addClient(t, "OFF", false, 3).ID
			},
			code:   apperror.CodeStateConflict,
			target: clients.ErrClientInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, false)
			e.addProduct(t, "BP-1", catalog.StatusAvailable, nil)
			active := e.addClient(t, "ACME", true, 1)
			if tt.prepare != nil {
				tt.prepare(t, e)
			}

			clientID := &active.ID
			if tt.client != nil {
				clientID = tt.client(t, e)
			}

			order, err := e.service.Create(ctx, domain.Draft{ClientID: clientID, Lines: tt.lines})
			require.Error(t, err)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
			if tt.details != nil {
				assert.Equal(t, tt.details, apperror.As(err).Details())
			}
			assert.Equal(t, int64(0), e.orderCount(t))
		})
	}
}

func TestOrderService_Create_DefaultClientFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("PicksFirstActive", func(t *testing.T) {
		e := newEnv(t, true)
		e.addProduct(t, "BP-1", catalog.StatusAvailable, nil)
		e.addClient(t, "OFF", false, 3)
		first := e.addClient(t, "ON", true, 1)
		e.addClient(t, "ON2", true, 3)

		order, err := e.service.Create(ctx, domain.Draft{Lines: []domain.Line{line("BP-1", 1, 0, 0)}})
		require.NoError(t, err)
		assert.Equal(t, first.ID, order.ClientID)
	})

	t.Run("NoActiveClient", func(t *testing.T) {
		e := newEnv(t, true)
		e.addProduct(t, "BP-1", catalog.StatusAvailable, nil)
		e.addClient(t, "OFF", false, 3)

		_, err := e.service.Create(ctx, domain.Draft{Lines: []domain.Line{line("BP-1", 1, 0, 0)}})
		assert.ErrorIs(t, err, clients.ErrNoActiveClient)
		assert.Equal(t, "no active client", apperror.As(err).Message())
	})
}

func TestOrderService_Lifecycle(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	e.addProduct(t, "BP-1", catalog.StatusAvailable, nil)
	client := e.addClient(t, "ACME", true, 1)

	order, err := e.service.Create(ctx, domain.Draft{ClientID: &client.ID, Lines: []domain.Line{line("BP-1", 1, 0, 0)}})
	require.NoError(t, err)

	err = e.service.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotDeletable)
	assert.Equal(t, apperror.CodeStateConflict, apperror.CodeOf(err))

	_, err = e.service.Transition(ctx, order.ID, domain.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	updated, err := e.service.Advance(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, updated.Status)

	_, err = e.service.Transition(ctx, order.ID, domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	updated, err = e.service.Advance(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)

	_, err = e.service.Advance(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, apperror.CodeStateConflict, apperror.CodeOf(err))

	got, err := e.service.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, got.Status)

	require.NoError(t, e.service.Delete(ctx, order.ID))
	_, err = e.service.Get(ctx, order.ID)
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))

	var items int64
	require.NoError(t, e.db.DB(ctx).Model(&models.OrderItem{}).Count(&items).Error)
	assert.Equal(t, int64(0), items)

	err = e.service.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))

	assert.Equal(t, 2.0, e.counterValue(t, "order_status_transitions_total"))
	assert.Equal(t, 1.0, e.counterValue(t, "orders_deleted_total"))
	assert.Equal(t, 5.0, e.counterValue(t, "order_operation_failures_total"))
}

func TestOrderService_TransitionValidation(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	_, err := e.service.Transition(ctx, 1, domain.Status("cancelled"))
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))

	_, err = e.service.Advance(ctx, 42)
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

func TestOrderService_ReviseItems(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	e.addProduct(t, "BP-1", catalog.StatusAvailable, nil)
	e.addProduct(t, "BP-2", catalog.StatusLowStock, nil)
	client := e.addClient(t, "ACME", true, 2)

	order, err := e.service.Create(ctx, domain.Draft{ClientID: &client.ID, Lines: []domain.Line{line("BP-1", 1, 0, 0)}})
	require.NoError(t, err)

	revised, err := e.service.ReviseItems(ctx, order.ID, []domain.Line{line("BP-2", 3, 2, 9), line("BP-1", 0, 0, 0)})
	require.NoError(t, err)
	require.Len(t, revised.Items, 1)
	assert.Equal(t, "BP-2", revised.Items[0].SKU)
	assert.Equal(t, domain.Quantities{A: 3, B: 2}, revised.Items[0].Quantities)
	assert.Equal(t, "Low stock", *revised.Items[0].StatusText)

	_, err = e.service.ReviseItems(ctx, order.ID, []domain.Line{line("NOPE", 1, 0, 0)})
	assert.ErrorIs(t, err, domain.ErrUnknownSKU)

	e.addProduct(t, "BP-3", catalog.StatusOutOfStock, nil)
	_, err = e.service.ReviseItems(ctx, order.ID, []domain.Line{line("BP-3", 1, 0, 0)})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, apperror.CodeStateConflict, apperror.CodeOf(err))

	_, err = e.service.ReviseItems(ctx, order.ID, []domain.Line{line("BP-2", math.MaxInt32+1, 0, 0)})
	assert.ErrorIs(t, err, domain.ErrQuantityTooLarge)
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))

	unchanged, err := e.service.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, unchanged.Items, 1)
	assert.Equal(t, "BP-2", unchanged.Items[0].SKU)

	_, err = e.service.Advance(ctx, order.ID)
	require.NoError(t, err)

	_, err = e.service.ReviseItems(ctx, order.ID, []domain.Line{line("BP-1", 1, 0, 0)})
	assert.ErrorIs(t, err, domain.ErrNotEditable)
	assert.Equal(t, apperror.CodeStateConflict, apperror.CodeOf(err))

	_, err = e.service.ReviseItems(ctx, 999, []domain.Line{line("BP-1", 1, 0, 0)})
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

func TestOrderService_ListScopedNewestFirst(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	e.addProduct(t, "BP-1", catalog.StatusAvailable, nil)
	a := e.addClient(t, "A", true, 1)
	b := e.addClient(t, "B", true, 1)

	first, err := e.service.Create(ctx, domain.Draft{ClientID: &a.ID, Lines: []domain.Line{line("BP-1", 1, 0, 0)}})
	require.NoError(t, err)
	second, err := e.service.Create(ctx, domain.Draft{ClientID: &a.ID, Lines: []domain.Line{line("BP-1", 2, 0, 0)}})
	require.NoError(t, err)
	_, err = e.service.Create(ctx, domain.Draft{ClientID: &b.ID, Lines: []domain.Line{line("BP-1", 3, 0, 0)}})
	require.NoError(t, err)

	orders, err := e.service.List(ctx, &a.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Equal(t, "A", orders[0].Client.Code)

	all, err := e.service.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMapError(t *testing.T) {
	assert.Equal(t, apperror.CodeInternal, apperror.CodeOf(mapError(errors.New("boom"), "op")))

	coded := apperror.Conflict(nil, "x")
	assert.Same(t, coded, mapError(coded, "op"))

	wrapped := mapError(errors.Join(errors.New("ctx"), domain.ErrOrderNotFound), "op")
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(wrapped))
}
