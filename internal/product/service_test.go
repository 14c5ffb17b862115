package product

import (
	"context"
	"testing"

	"marketplace-be/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
		p.IsActive = true
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter *ListFilter, limit, page int32) ([]*Product, error) {
	args := m.Called(ctx, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input UpdateProductInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockRepository) Deactivate(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id uint) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByUserID(ctx context.Context, userID uint) (*store.Store, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context, search *string, limit, page int32) ([]*store.Store, error) {
	args := m.Called(ctx, search, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}

func (m *MockStoreRepository) Update(ctx context.Context, id uint, input store.UpdateStoreInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func TestService_CreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		storeRepo := new(MockStoreRepository)
		svc := NewService(repo, storeRepo)

		storeRepo.On("GetByUserID", mock.Anything, uint(3)).
			Return(&store.Store{ID: 10, UserID: 3, Name: "My Shop"}, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		p, err := svc.CreateProduct(context.Background(), 3, CreateProductInput{
			CategoryID:    1,
			Name:          "Widget",
			Price:         9.99,
			StockQuantity: 5,
		})

		require.NoError(t, err)
		assert.Equal(t, uint(10), p.StoreID)
		assert.True(t, p.IsActive)
	})

	t.Run("NoStore", func(t *testing.T) {
		repo := new(MockRepository)
		storeRepo := new(MockStoreRepository)
		svc := NewService(repo, storeRepo)

		storeRepo.On("GetByUserID", mock.Anything, uint(3)).
			Return(nil, store.ErrStoreNotFound)

		_, err := svc.CreateProduct(context.Background(), 3, CreateProductInput{
			CategoryID: 1, Name: "Widget", Price: 9.99,
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("InvalidPrice", func(t *testing.T) {
		repo := new(MockRepository)
		storeRepo := new(MockStoreRepository)
		svc := NewService(repo, storeRepo)

		_, err := svc.CreateProduct(context.Background(), 3, CreateProductInput{
			CategoryID: 1, Name: "Widget", Price: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("NegativeStock", func(t *testing.T) {
		repo := new(MockRepository)
		storeRepo := new(MockStoreRepository)
		svc := NewService(repo, storeRepo)

		_, err := svc.CreateProduct(context.Background(), 3, CreateProductInput{
			CategoryID: 1, Name: "Widget", Price: 1, StockQuantity: -1,
		})
		assert.ErrorIs(t, err, ErrInvalidStock)
	})
}

func TestService_DeleteProduct(t *testing.T) {
	t.Run("OwnerCanDelete", func(t *testing.T) {
		repo := new(MockRepository)
		storeRepo := new(MockStoreRepository)
		svc := NewService(repo, storeRepo)

		repo.On("GetByID", mock.Anything, uint(7)).
			Return(&Product{ID: 7, StoreID: 10}, nil)
		storeRepo.On("GetByID", mock.Anything, uint(10)).
			Return(&store.Store{ID: 10, UserID: 3}, nil)
		repo.On("Deactivate", mock.Anything, uint(7)).Return(nil)

		assert.NoError(t, svc.DeleteProduct(context.Background(), 3, 7))
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		repo := new(MockRepository)
		storeRepo := new(MockStoreRepository)
		svc := NewService(repo, storeRepo)

		repo.On("GetByID", mock.Anything, uint(7)).
			Return(&Product{ID: 7, StoreID: 10}, nil)
		storeRepo.On("GetByID", mock.Anything, uint(10)).
			Return(&store.Store{ID: 10, UserID: 3}, nil)

		err := svc.DeleteProduct(context.Background(), 99, 7)
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
	})
}
