package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s *Store) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = 1
		s.IsActive = true
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) (*Store, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, search *string, limit, page int32) ([]*Store, error) {
	args := m.Called(ctx, search, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Store), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input UpdateStoreInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func TestService_CreateStore(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*store.Store")).Return(nil)

	st, err := svc.CreateStore(context.Background(), 3, CreateStoreInput{Name: "My Shop"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), st.UserID)
	assert.True(t, st.IsActive)
}

func TestService_UpdateStore(t *testing.T) {
	name := "Renamed"

	t.Run("OwnerCanUpdate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		existing := &Store{ID: 1, UserID: 3, Name: "My Shop"}
		updated := &Store{ID: 1, UserID: 3, Name: "Renamed"}

		repo.On("GetByID", mock.Anything, uint(1)).Return(existing, nil).Once()
		repo.On("Update", mock.Anything, uint(1), mock.Anything).Return(nil)
		repo.On("GetByID", mock.Anything, uint(1)).Return(updated, nil).Once()

		st, err := svc.UpdateStore(context.Background(), 3, 1, UpdateStoreInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", st.Name)
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		existing := &Store{ID: 1, UserID: 3}
		repo.On("GetByID", mock.Anything, uint(1)).Return(existing, nil)

		_, err := svc.UpdateStore(context.Background(), 99, 1, UpdateStoreInput{Name: &name})
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, uint(404)).Return(nil, ErrStoreNotFound)

		_, err := svc.UpdateStore(context.Background(), 3, 404, UpdateStoreInput{Name: &name})
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}
