package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateProvider(ctx context.Context, p *Provider) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 10
	}
	return args.Error(0)
}

func (m *MockRepository) GetProviderByID(ctx context.Context, id uint) (*Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Provider), args.Error(1)
}

func (m *MockRepository) GetProviderByUserID(ctx context.Context, userID uint) (*Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Provider), args.Error(1)
}

func (m *MockRepository) ListProviders(ctx context.Context, limit, page int32) ([]*Provider, error) {
	args := m.Called(ctx, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Provider), args.Error(1)
}

func (m *MockRepository) CreateService(ctx context.Context, s *Service) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = 20
	}
	return args.Error(0)
}

func (m *MockRepository) GetServiceByID(ctx context.Context, id uint) (*Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *MockRepository) ListServices(ctx context.Context, providerID *uint, limit, page int32) ([]*Service, error) {
	args := m.Called(ctx, providerID, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Service), args.Error(1)
}

func (m *MockRepository) CreateBooking(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 30
	}
	return args.Error(0)
}

func (m *MockRepository) GetBookingByID(ctx context.Context, id uint) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) ListByClient(ctx context.Context, clientID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error) {
	args := m.Called(ctx, clientID, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockRepository) ListByProvider(ctx context.Context, providerID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error) {
	args := m.Called(ctx, providerID, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockRepository) UpdateBookingStatus(ctx context.Context, bookingID uint, to Status, reason *string) error {
	args := m.Called(ctx, bookingID, to, reason)
	return args.Error(0)
}

func bookingInput() CreateBookingInput {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	return CreateBookingInput{
		ServiceID:    20,
		BookingDate:  tomorrow,
		StartTime:    tomorrow.Add(10 * time.Hour),
		LocationType: LocationClient,
	}
}

func TestService_Book(t *testing.T) {
	ctx := context.Background()

	t.Run("CopiesServicePrice", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetServiceByID", ctx, uint(20)).
			Return(&Service{ID: 20, ProviderID: 10, Price: 75.00, IsActive: true}, nil)
		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		b, err := svc.Book(ctx, 1, bookingInput())
		require.NoError(t, err)
		assert.Equal(t, 75.00, b.TotalPrice)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, uint(10), b.ProviderID)
		assert.Regexp(t, regexp.MustCompile(`^BK\d{14}\d{3}$`), b.BookingReference)
	})

	t.Run("InvalidLocationType", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		input := bookingInput()
		input.LocationType = "moon"

		_, err := svc.Book(ctx, 1, input)
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})

	t.Run("PastDate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		input := bookingInput()
		input.BookingDate = time.Now().UTC().AddDate(0, 0, -1)

		_, err := svc.Book(ctx, 1, input)
		assert.ErrorIs(t, err, ErrPastBookingDate)
	})

	t.Run("InactiveService", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetServiceByID", ctx, uint(20)).
			Return(&Service{ID: 20, ProviderID: 10, Price: 75.00, IsActive: false}, nil)

		_, err := svc.Book(ctx, 1, bookingInput())
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("RetriesOnReferenceConflict", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetServiceByID", ctx, uint(20)).
			Return(&Service{ID: 20, ProviderID: 10, Price: 75.00, IsActive: true}, nil)
		mockRepo.On("CreateBooking", ctx, mock.Anything).Return(ErrReferenceConflict).Once()
		mockRepo.On("CreateBooking", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Book(ctx, 1, bookingInput())
		require.NoError(t, err)
		mockRepo.AssertNumberOfCalls(t, "CreateBooking", 2)
	})
}

func TestService_ListBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("ProviderSeesOwnSchedule", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetProviderByUserID", ctx, uint(2)).Return(&Provider{ID: 10, UserID: 2}, nil)
		mockRepo.On("ListByProvider", ctx, uint(10), (*BookingFilter)(nil), int32(20), int32(1)).
			Return([]*Booking{{ID: 30}}, nil)

		bookings, err := svc.ListBookings(ctx, 2, nil, 20, 1)
		require.NoError(t, err)
		assert.Len(t, bookings, 1)
	})

	t.Run("ClientSeesOwnBookings", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetProviderByUserID", ctx, uint(1)).Return(nil, ErrProviderNotFound)
		mockRepo.On("ListByClient", ctx, uint(1), (*BookingFilter)(nil), int32(20), int32(1)).
			Return([]*Booking{}, nil)

		bookings, err := svc.ListBookings(ctx, 1, nil, 20, 1)
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})
}

func TestService_Transition(t *testing.T) {
	ctx := context.Background()
	pending := &Booking{ID: 30, ClientID: 1, ProviderID: 10, Status: StatusPending}

	t.Run("ProviderConfirms", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, uint(30)).Return(pending, nil)
		mockRepo.On("GetProviderByUserID", ctx, uint(2)).Return(&Provider{ID: 10, UserID: 2}, nil)
		mockRepo.On("UpdateBookingStatus", ctx, uint(30), StatusConfirmed, (*string)(nil)).Return(nil)

		err := svc.Transition(ctx, 2, 30, StatusConfirmed, nil)
		assert.NoError(t, err)
	})

	t.Run("ClientCannotConfirm", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, uint(30)).Return(pending, nil)
		mockRepo.On("GetProviderByUserID", ctx, uint(1)).Return(nil, ErrProviderNotFound)

		err := svc.Transition(ctx, 1, 30, StatusConfirmed, nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("ClientCancels", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		reason := "schedule conflict"
		mockRepo.On("GetBookingByID", ctx, uint(30)).Return(pending, nil)
		mockRepo.On("GetProviderByUserID", ctx, uint(1)).Return(nil, ErrProviderNotFound)
		mockRepo.On("UpdateBookingStatus", ctx, uint(30), StatusCancelled, &reason).Return(nil)

		err := svc.Transition(ctx, 1, 30, StatusCancelled, &reason)
		assert.NoError(t, err)
	})

	t.Run("StrangerCannotCancel", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBookingByID", ctx, uint(30)).Return(pending, nil)
		mockRepo.On("GetProviderByUserID", ctx, uint(9)).Return(nil, ErrProviderNotFound)

		err := svc.Transition(ctx, 9, 30, StatusCancelled, nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestBookingTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusInProgress))
	assert.True(t, CanTransition(StatusInProgress, StatusCompleted))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))

	assert.False(t, CanTransition(StatusInProgress, StatusCancelled))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
}
