package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID uint, limit, page int32) ([]*Review, error) {
	args := m.Called(ctx, productID, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Review), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, reviewID uint) (*Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, r *Review) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 1
	}
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, reviewID uint, input UpdateReviewInput) error {
	args := m.Called(ctx, reviewID, input)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, reviewID uint) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockRepository) Summarize(ctx context.Context, productID uint) (*Summary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Summary), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

		rv, err := svc.Create(ctx, 1, CreateReviewInput{ProductID: 7, Rating: 4})
		require.NoError(t, err)
		assert.Equal(t, uint(1), rv.ID)
		assert.Equal(t, 4, rv.Rating)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Create(ctx, 1, CreateReviewInput{ProductID: 7, Rating: rating})
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.Anything).Return(ErrAlreadyReviewed)

		_, err := svc.Create(ctx, 1, CreateReviewInput{ProductID: 7, Rating: 4})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	five := 5

	t.Run("Owner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(3)).
			Return(&Review{ID: 3, UserID: 1, Rating: 4}, nil).Once()
		mockRepo.On("Update", ctx, uint(3), mock.Anything).Return(nil)
		mockRepo.On("GetByID", ctx, uint(3)).
			Return(&Review{ID: 3, UserID: 1, Rating: 5}, nil).Once()

		rv, err := svc.Update(ctx, 1, 3, UpdateReviewInput{Rating: &five})
		require.NoError(t, err)
		assert.Equal(t, 5, rv.Rating)
	})

	t.Run("NotOwner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(3)).Return(&Review{ID: 3, UserID: 2}, nil)

		_, err := svc.Update(ctx, 1, 3, UpdateReviewInput{Rating: &five})
		assert.ErrorIs(t, err, ErrUnauthorized)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("GetByID", ctx, uint(3)).Return(&Review{ID: 3, UserID: 2}, nil)

	err := svc.Delete(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
