package service

import (
	"context"
	"errors"
	"testing"

	"order-portal/internal/core/apperror"
	catalog "order-portal/internal/features/catalog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFavoritesRepository is a mock implementation of ports.FavoritesRepository
type MockFavoritesRepository struct {
	mock.Mock
}

func (m *MockFavoritesRepository) GetFavorite(ctx context.Context, owner string, productID uint) (bool, error) {
	args := m.Called(ctx, owner, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoritesRepository) SetFavorite(ctx context.Context, owner string, productID uint, favorite bool) error {
	args := m.Called(ctx, owner, productID, favorite)
	return args.Error(0)
}

func (m *MockFavoritesRepository) ListFavorites(ctx context.Context, owner string) ([]uint, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

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

func TestFavoritesService_SetFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("MarksExistingProduct", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepository)
		mockProducts := new(MockProductReader)
		service := NewFavoritesService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, uint(10)).Return(&catalog.Product{ID: 10}, nil).Once()
		mockRepo.On("SetFavorite", ctx, "client-1", uint(10), true).Return(nil).Once()

		assert.NoError(t, service.SetFavorite(ctx, " client-1 ", 10, true))
		mockRepo.AssertExpectations(t)
		mockProducts.AssertExpectations(t)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepository)
		mockProducts := new(MockProductReader)
		service := NewFavoritesService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, uint(99)).Return(nil, catalog.ErrProductNotFound).Once()

		err := service.SetFavorite(ctx, "client-1", 99, true)
		assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
		mockRepo.AssertNotCalled(t, "SetFavorite", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnmarkSkipsProductLookup", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepository)
		mockProducts := new(MockProductReader)
		service := NewFavoritesService(mockRepo, mockProducts)

		mockRepo.On("SetFavorite", ctx, "client-1", uint(99), false).Return(nil).Once()

		assert.NoError(t, service.SetFavorite(ctx, "client-1", 99, false))
		mockProducts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("InvalidOwner", func(t *testing.T) {
		service := NewFavoritesService(new(MockFavoritesRepository), new(MockProductReader))

		err := service.SetFavorite(ctx, "", 1, true)
		assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepository)
		service := NewFavoritesService(mockRepo, new(MockProductReader))

		mockRepo.On("SetFavorite", ctx, "a", uint(1), false).Return(errors.New("redis down")).Once()

		err := service.SetFavorite(ctx, "a", 1, false)
		assert.Equal(t, apperror.CodeDependency, apperror.CodeOf(err))
	})
}

func TestFavoritesService_GetAndList(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockFavoritesRepository)
	service := NewFavoritesService(mockRepo, new(MockProductReader))

	mockRepo.On("GetFavorite", ctx, "admin", uint(3)).Return(true, nil).Once()
	mockRepo.On("ListFavorites", ctx, "admin").Return([]uint{3, 8}, nil).Once()
	mockRepo.On("ListFavorites", ctx, "broken").Return(nil, errors.New("redis down")).Once()

	ok, err := service.GetFavorite(ctx, "admin", 3)
	assert.NoError(t, err)
	assert.True(t, ok)

	ids, err := service.ListFavorites(ctx, "admin")
	assert.NoError(t, err)
	assert.Equal(t, []uint{3, 8}, ids)

	_, err = service.ListFavorites(ctx, "broken")
	assert.Equal(t, apperror.CodeDependency, apperror.CodeOf(err))

	mockRepo.AssertExpectations(t)
}
