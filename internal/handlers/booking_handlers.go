package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"marketplace-be/internal/booking"

	"github.com/gin-gonic/gin"
)

type registerProviderInput struct {
	BusinessName string  `json:"business_name" binding:"required,max=255"`
	Bio          *string `json:"bio" binding:"omitempty,max=2000"`
	Phone        string  `json:"phone" binding:"required,max=30"`
}

type createServiceInput struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Description     *string `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
}

type createBookingInput struct {
	ServiceID           uint       `json:"service_id" binding:"required"`
	BookingDate         time.Time  `json:"booking_date" binding:"required"`
	StartTime           time.Time  `json:"start_time" binding:"required"`
	EndTime             *time.Time `json:"end_time"`
	SpecialRequirements *string    `json:"special_requirements" binding:"omitempty,max=1000"`
	LocationType        string     `json:"location_type" binding:"required"`
	ServiceAddress      *string    `json:"service_address" binding:"omitempty,max=500"`
}

type transitionBookingInput struct {
	Status string  `json:"status" binding:"required"`
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

func bookingError(c *gin.Context, err error) {
	var transition *booking.InvalidTransitionError
	if errors.As(err, &transition) {
		respondError(c, http.StatusConflict, transition.Error())
		return
	}

	switch err {
	case booking.ErrProviderNotFound:
		respondError(c, http.StatusNotFound, "service provider not found")
	case booking.ErrProviderExists:
		respondError(c, http.StatusConflict, "user is already a service provider")
	case booking.ErrServiceNotFound:
		respondError(c, http.StatusNotFound, "service not found")
	case booking.ErrServiceInactive:
		respondError(c, http.StatusUnprocessableEntity, "service is not available")
	case booking.ErrBookingNotFound:
		respondError(c, http.StatusNotFound, "booking not found")
	case booking.ErrUnauthorized:
		respondError(c, http.StatusForbidden, "you are not allowed to manage this booking")
	case booking.ErrInvalidLocation:
		respondError(c, http.StatusUnprocessableEntity, "unknown location type")
	case booking.ErrPastBookingDate:
		respondError(c, http.StatusUnprocessableEntity, "booking date must not be in the past")
	case booking.ErrInvalidPrice:
		respondError(c, http.StatusUnprocessableEntity, "price must be positive")
	default:
		respondError(c, http.StatusInternalServerError, "booking operation failed")
	}
}

func (h *Handlers) RegisterProvider(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input registerProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	provider, err := h.Bookings.RegisterProvider(c.Request.Context(), userID, booking.CreateProviderInput{
		BusinessName: input.BusinessName,
		Bio:          input.Bio,
		Phone:        input.Phone,
	})
	if err != nil {
		bookingError(c, err)
		return
	}
	respondCreated(c, "service provider registered successfully", provider)
}

func (h *Handlers) ListProviders(c *gin.Context) {
	limit, page := pagination(c)

	providers, err := h.Bookings.ListProviders(c.Request.Context(), limit, page)
	if err != nil {
		bookingError(c, err)
		return
	}
	respondOK(c, "providers retrieved successfully", providers)
}

func (h *Handlers) AddService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input createServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	svc, err := h.Bookings.AddService(c.Request.Context(), userID, booking.CreateServiceInput{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
	})
	if err != nil {
		bookingError(c, err)
		return
	}
	respondCreated(c, "service created successfully", svc)
}

func (h *Handlers) ListServices(c *gin.Context) {
	limit, page := pagination(c)

	var providerID *uint
	if raw := c.Query("provider_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "provider_id must be a number")
			return
		}
		v := uint(id)
		providerID = &v
	}

	services, err := h.Bookings.ListServices(c.Request.Context(), providerID, limit, page)
	if err != nil {
		bookingError(c, err)
		return
	}
	respondOK(c, "services retrieved successfully", services)
}

func (h *Handlers) GetService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc, err := h.Bookings.GetService(c.Request.Context(), id)
	if err != nil {
		bookingError(c, err)
		return
	}
	respondOK(c, "service retrieved successfully", svc)
}

func (h *Handlers) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	b, err := h.Bookings.Book(c.Request.Context(), userID, booking.CreateBookingInput{
		ServiceID:           input.ServiceID,
		BookingDate:         input.BookingDate,
		StartTime:           input.StartTime,
		EndTime:             input.EndTime,
		SpecialRequirements: input.SpecialRequirements,
		LocationType:        input.LocationType,
		ServiceAddress:      input.ServiceAddress,
	})
	if err != nil {
		bookingError(c, err)
		return
	}
	respondCreated(c, "booking created successfully", b)
}

func (h *Handlers) ListBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter, ok := bookingFilter(c)
	if !ok {
		return
	}
	limit, page := pagination(c)

	bookings, err := h.Bookings.ListBookings(c.Request.Context(), userID, filter, limit, page)
	if err != nil {
		bookingError(c, err)
		return
	}
	respondOK(c, "bookings retrieved successfully", bookings)
}

func (h *Handlers) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.Bookings.GetBooking(c.Request.Context(), userID, id)
	if err != nil {
		bookingError(c, err)
		return
	}
	respondOK(c, "booking retrieved successfully", b)
}

func (h *Handlers) TransitionBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input transitionBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	err := h.Bookings.Transition(c.Request.Context(), userID, id, booking.Status(input.Status), input.Reason)
	if err != nil {
		bookingError(c, err)
		return
	}
	respondOK(c, "booking status updated successfully", nil)
}

func bookingFilter(c *gin.Context) (*booking.BookingFilter, bool) {
	filter := &booking.BookingFilter{}

	if raw := c.Query("status"); raw != "" {
		status := booking.Status(raw)
		if !booking.ValidStatus(status) {
			respondError(c, http.StatusUnprocessableEntity, "unknown booking status")
			return nil, false
		}
		filter.Status = &status
	}
	if raw := c.Query("service_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "service_id must be a number")
			return nil, false
		}
		v := uint(id)
		filter.ServiceID = &v
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "date_from must be YYYY-MM-DD")
			return nil, false
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "date_to must be YYYY-MM-DD")
			return nil, false
		}
		filter.DateTo = &to
	}

	return filter, true
}
