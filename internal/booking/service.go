package booking

import (
	"context"
	"time"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

// bookingAttempts bounds the retry loop for reference collisions.
const bookingAttempts = 3

type BookingService interface {
	RegisterProvider(ctx context.Context, userID uint, input CreateProviderInput) (*Provider, error)
	ListProviders(ctx context.Context, limit, page int32) ([]*Provider, error)

	AddService(ctx context.Context, userID uint, input CreateServiceInput) (*Service, error)
	ListServices(ctx context.Context, providerID *uint, limit, page int32) ([]*Service, error)
	GetService(ctx context.Context, serviceID uint) (*Service, error)

	// Book creates a pending booking for the caller; the price is
	// copied from the service at booking time.
	Book(ctx context.Context, clientID uint, input CreateBookingInput) (*Booking, error)

	// ListBookings is role-scoped: providers see bookings against
	// their services, everyone else sees their own bookings.
	ListBookings(ctx context.Context, userID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error)
	GetBooking(ctx context.Context, userID, bookingID uint) (*Booking, error)

	// Transition moves a booking along its lifecycle. Confirm, start
	// and complete belong to the provider; cancel belongs to either
	// side while the booking is still pending or confirmed.
	Transition(ctx context.Context, userID, bookingID uint, to Status, reason *string) error
}

type bookingService struct {
	repo Repository
}

func NewService(repo Repository) BookingService {
	return &bookingService{repo: repo}
}

func (s *bookingService) RegisterProvider(ctx context.Context, userID uint, input CreateProviderInput) (*Provider, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RegisterProvider"),
		zap.Uint("user_id", userID),
	)

	p := &Provider{
		UserID:       userID,
		BusinessName: input.BusinessName,
		Bio:          input.Bio,
		Phone:        input.Phone,
	}

	if err := s.repo.CreateProvider(ctx, p); err != nil {
		log.Warn("failed to register provider", zap.Error(err))
		return nil, err
	}

	log.Info("provider registered", zap.Uint("provider_id", p.ID))
	return p, nil
}

func (s *bookingService) ListProviders(ctx context.Context, limit, page int32) ([]*Provider, error) {
	providers, err := s.repo.ListProviders(ctx, limit, page)
	if err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []*Provider{}
	}
	return providers, nil
}

func (s *bookingService) AddService(ctx context.Context, userID uint, input CreateServiceInput) (*Service, error) {
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	p, err := s.repo.GetProviderByUserID(ctx, userID)
	if err != nil {
		if err == ErrProviderNotFound {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	svc := &Service{
		ProviderID:      p.ID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
	}

	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (s *bookingService) ListServices(ctx context.Context, providerID *uint, limit, page int32) ([]*Service, error) {
	services, err := s.repo.ListServices(ctx, providerID, limit, page)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []*Service{}
	}
	return services, nil
}

func (s *bookingService) GetService(ctx context.Context, serviceID uint) (*Service, error) {
	return s.repo.GetServiceByID(ctx, serviceID)
}

func (s *bookingService) Book(ctx context.Context, clientID uint, input CreateBookingInput) (*Booking, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Book"),
		zap.Uint("client_id", clientID),
		zap.Uint("service_id", input.ServiceID),
	)

	if !ValidLocationType(input.LocationType) {
		return nil, ErrInvalidLocation
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if input.BookingDate.Before(today) {
		return nil, ErrPastBookingDate
	}

	svc, err := s.repo.GetServiceByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	b := &Booking{
		ClientID:            clientID,
		ProviderID:          svc.ProviderID,
		ServiceID:           svc.ID,
		BookingDate:         input.BookingDate,
		StartTime:           input.StartTime,
		EndTime:             input.EndTime,
		Status:              StatusPending,
		TotalPrice:          svc.Price,
		SpecialRequirements: input.SpecialRequirements,
		LocationType:        input.LocationType,
		ServiceAddress:      input.ServiceAddress,
	}

	for attempt := 1; attempt <= bookingAttempts; attempt++ {
		b.BookingReference = GenerateReference()
		err = s.repo.CreateBooking(ctx, b)
		if err != ErrReferenceConflict {
			break
		}
		log.Warn("booking reference collision, retrying", zap.Int("attempt", attempt))
	}
	if err != nil {
		return nil, err
	}

	log.Info("booking created", zap.String("booking_reference", b.BookingReference))
	return b, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error) {
	var bookings []*Booking

	p, err := s.repo.GetProviderByUserID(ctx, userID)
	switch err {
	case nil:
		bookings, err = s.repo.ListByProvider(ctx, p.ID, filter, limit, page)
	case ErrProviderNotFound:
		bookings, err = s.repo.ListByClient(ctx, userID, filter, limit, page)
	}
	if err != nil {
		return nil, err
	}

	if bookings == nil {
		bookings = []*Booking{}
	}
	return bookings, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID uint) (*Booking, error) {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ClientID == userID {
		return b, nil
	}

	p, err := s.repo.GetProviderByUserID(ctx, userID)
	if err == nil && p.ID == b.ProviderID {
		return b, nil
	}

	return nil, ErrUnauthorized
}

func (s *bookingService) Transition(ctx context.Context, userID, bookingID uint, to Status, reason *string) error {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	isClient := b.ClientID == userID
	isProvider := false
	if p, err := s.repo.GetProviderByUserID(ctx, userID); err == nil {
		isProvider = p.ID == b.ProviderID
	}

	switch to {
	case StatusConfirmed, StatusInProgress, StatusCompleted:
		if !isProvider {
			return ErrUnauthorized
		}
	case StatusCancelled:
		if !isClient && !isProvider {
			return ErrUnauthorized
		}
	default:
		return &InvalidTransitionError{From: b.Status, To: to}
	}

	return s.repo.UpdateBookingStatus(ctx, bookingID, to, reason)
}
