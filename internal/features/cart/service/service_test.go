package service

import (
	"context"
	"testing"
	"time"

	"order-portal/internal/core/apperror"
	"order-portal/internal/core/cache"
	"order-portal/internal/features/cart/adapters"
	"order-portal/internal/features/cart/domain"
	catalog "order-portal/internal/features/catalog/domain"
	clients "order-portal/internal/features/clients/domain"
	orders "order-portal/internal/features/orders/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductReader is a mock implementation of ports.ProductReader
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) GetByID(ctx context.Context, id uint) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

// MockClientReader is a mock implementation of ports.ClientReader
type MockClientReader struct {
	mock.Mock
}

func (m *MockClientReader) GetByID(ctx context.Context, id uint) (*clients.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.Client), args.Error(1)
}

// MockOrderCreator is a mock implementation of ports.OrderCreator
type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) Create(ctx context.Context, draft orders.Draft) (*orders.Order, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

type fixture struct {
	service  *CartServiceImpl
	repo     *adapters.RedisCartRepository
	products *MockProductReader
	clients  *MockClientReader
	orders   *MockOrderCreator
	redis    *miniredis.Miniredis
}

func setup(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	f := &fixture{
		repo:     adapters.NewRedisCartRepository(adapter, time.Hour),
		products: new(MockProductReader),
		clients:  new(MockClientReader),
		orders:   new(MockOrderCreator),
		redis:    mr,
	}
	f.service = NewCartService(f.repo, f.products, f.clients, f.orders)
	return f
}

func (f *fixture) withClient(id uint, branchCount int, active bool) {
	f.clients.On("GetByID", mock.Anything, id).
		Return(&clients.Client{ID: id, Code: "C1", Name: "Taller", Active: active, BranchCount: branchCount}, nil)
}

func (f *fixture) withProduct(id uint, sku string, status catalog.Status) {
	f.products.On("GetByID", mock.Anything, id).
		Return(&catalog.Product{ID: id, SKU: sku, Status: status}, nil)
}

func TestCartService_AddAndSetQuantity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.withClient(1, 2, true)
	f.withProduct(10, "47201-60460", catalog.StatusAvailable)

	cart, err := f.service.AddProduct(ctx, 1, 10)
	require.NoError(t, err)
	cart, err = f.service.AddProduct(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].A)
	assert.False(t, cart.UpdatedAt.IsZero())

	cart, err = f.service.SetQuantity(ctx, 1, 10, orders.BranchB, "3")
	require.NoError(t, err)
	assert.Equal(t, orders.Quantities{A: 2, B: 3}, cart.Lines[0].Quantities)

	cart, err = f.service.SetQuantity(ctx, 1, 10, orders.BranchC, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Lines[0].C)

	stored, err := f.service.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, cart.Lines, stored.Lines)
	assert.True(t, f.redis.Exists("cart:1"))
}

func TestCartService_Failures(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.withClient(1, 3, true)
	f.withClient(2, 3, false)
	f.clients.On("GetByID", mock.Anything, uint(3)).Return(nil, clients.ErrClientNotFound)
	f.withProduct(20, "OUT-1", catalog.StatusOutOfStock)
	f.products.On("GetByID", mock.Anything, uint(21)).Return(nil, catalog.ErrProductNotFound)

	tests := []struct {
		name string
		call func() error
		code apperror.Code
	}{
		{"UnknownClient", func() error { _, err := f.service.Get(ctx, 3); return err }, apperror.CodeNotFound},
		{"InactiveClient", func() error { _, err := f.service.AddProduct(ctx, 2, 20); return err }, apperror.CodeStateConflict},
		{"OutOfStock", func() error { _, err := f.service.AddProduct(ctx, 1, 20); return err }, apperror.CodeStateConflict},
		{"UnknownProduct", func() error { _, err := f.service.AddProduct(ctx, 1, 21); return err }, apperror.CodeNotFound},
		{"LineNotInCart", func() error { _, err := f.service.SetQuantity(ctx, 1, 99, orders.BranchA, 1); return err }, apperror.CodeNotFound},
		{"InvalidBranch", func() error { _, err := f.service.SetQuantity(ctx, 1, 99, orders.Branch("D"), 1); return err }, apperror.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
		})
	}
	assert.False(t, f.redis.Exists("cart:1"))
}

func TestCartService_BranchCountShrinks(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	stored := domain.New(5, 3)
	stored.Add(10, "X")
	stored.SetQuantity(10, orders.BranchC, 4)
	require.NoError(t, f.repo.Save(ctx, stored))

	f.withClient(5, 1, true)

	cart, err := f.service.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.BranchCount)
	assert.Equal(t, orders.Quantities{A: 1}, cart.Lines[0].Quantities)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.withClient(1, 3, true)
	f.withProduct(10, "X", catalog.StatusIncoming)

	_, err := f.service.AddProduct(ctx, 1, 10)
	require.NoError(t, err)

	cart, err := f.service.RemoveProduct(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	require.NoError(t, f.service.Clear(ctx, 1))
	assert.False(t, f.redis.Exists("cart:1"))
}

func TestCartService_Submit(t *testing.T) {
	t.Run("ClearsOnSuccess", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()
		f.withClient(1, 2, true)
		f.withProduct(10, "X", catalog.StatusLowStock)

		_, err := f.service.AddProduct(ctx, 1, 10)
		require.NoError(t, err)

		comment := "urgent"
		f.orders.On("Create", mock.Anything, mock.MatchedBy(func(d orders.Draft) bool {
			return d.ClientID != nil && *d.ClientID == 1 &&
				d.Comment == &comment &&
				len(d.Lines) == 1 && d.Lines[0].SKU == "X" && d.Lines[0].A == 1
		})).Return(&orders.Order{ID: 42, Status: orders.StatusPending}, nil).Once()

		order, err := f.service.Submit(ctx, 1, &comment, nil)
		require.NoError(t, err)
		assert.Equal(t, uint(42), order.ID)
		assert.False(t, f.redis.Exists("cart:1"))
		f.orders.AssertExpectations(t)
	})

	t.Run("KeepsCartOnFailure", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()
		f.withClient(1, 2, true)
		f.withProduct(10, "X", catalog.StatusAvailable)

		_, err := f.service.AddProduct(ctx, 1, 10)
		require.NoError(t, err)

		f.orders.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperror.Validation(&orders.UnknownSKUError{SKUs: []string{"X"}}, "unknown SKU")).Once()

		_, err = f.service.Submit(ctx, 1, nil, nil)
		assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
		assert.True(t, f.redis.Exists("cart:1"))
	})

	t.Run("UsesCurrentSKU", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()
		f.withClient(1, 1, true)
		f.products.On("GetByID", mock.Anything, uint(10)).
			Return(&catalog.Product{ID: 10, SKU: "OLD-1", Status: catalog.StatusAvailable}, nil).Once()

		_, err := f.service.AddProduct(ctx, 1, 10)
		require.NoError(t, err)

		f.products.On("GetByID", mock.Anything, uint(10)).
			Return(&catalog.Product{ID: 10, SKU: "NEW-1", Status: catalog.StatusAvailable}, nil).Once()
		f.orders.On("Create", mock.Anything, mock.MatchedBy(func(d orders.Draft) bool {
			return len(d.Lines) == 1 && d.Lines[0].SKU == "NEW-1" && d.Lines[0].A == 1
		})).Return(&orders.Order{ID: 7, Status: orders.StatusPending}, nil).Once()

		order, err := f.service.Submit(ctx, 1, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, uint(7), order.ID)
		f.products.AssertExpectations(t)
		f.orders.AssertExpectations(t)
	})

	t.Run("DeletedProductKeepsStoredSKU", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()
		f.withClient(1, 1, true)
		f.products.On("GetByID", mock.Anything, uint(10)).
			Return(&catalog.Product{ID: 10, SKU: "X", Status: catalog.StatusAvailable}, nil).Once()

		_, err := f.service.AddProduct(ctx, 1, 10)
		require.NoError(t, err)

		f.products.On("GetByID", mock.Anything, uint(10)).Return(nil, catalog.ErrProductNotFound).Once()
		f.orders.On("Create", mock.Anything, mock.MatchedBy(func(d orders.Draft) bool {
			return len(d.Lines) == 1 && d.Lines[0].SKU == "X"
		})).Return(nil, apperror.Validation(&orders.UnknownSKUError{SKUs: []string{"X"}}, "unknown SKU")).Once()

		_, err = f.service.Submit(ctx, 1, nil, nil)
		assert.ErrorIs(t, err, orders.ErrUnknownSKU)
		assert.True(t, f.redis.Exists("cart:1"))
		f.orders.AssertExpectations(t)
	})

	t.Run("ProductLookupFails", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()
		f.withClient(1, 1, true)
		f.products.On("GetByID", mock.Anything, uint(10)).
			Return(&catalog.Product{ID: 10, SKU: "X", Status: catalog.StatusAvailable}, nil).Once()

		_, err := f.service.AddProduct(ctx, 1, 10)
		require.NoError(t, err)

		f.products.On("GetByID", mock.Anything, uint(10)).Return(nil, assert.AnError).Once()

		_, err = f.service.Submit(ctx, 1, nil, nil)
		assert.Equal(t, apperror.CodeInternal, apperror.CodeOf(err))
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.True(t, f.redis.Exists("cart:1"))
	})
}
