package booking

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

const (
	LocationClient   = "client_location"
	LocationProvider = "provider_location"
	LocationCustom   = "custom"
)

func ValidLocationType(t string) bool {
	return t == LocationClient || t == LocationProvider || t == LocationCustom
}

// Provider is a user offering services on the platform.
type Provider struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Bio          *string   `json:"bio,omitempty"`
	Phone        string    `json:"phone"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Service is a bookable offering of a provider.
type Service struct {
	ID              uint      `json:"id"`
	ProviderID      uint      `json:"provider_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	ProviderName    string    `json:"provider_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Booking struct {
	ID               uint       `json:"id"`
	BookingReference string     `json:"booking_reference"`
	ClientID         uint       `json:"client_id"`
	ProviderID       uint       `json:"provider_id"`
	ServiceID        uint       `json:"service_id"`
	BookingDate      time.Time  `json:"booking_date"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	Status           Status     `json:"status"`
	// TotalPrice is copied from the service at booking time.
	TotalPrice          float64    `json:"total_price"`
	SpecialRequirements *string    `json:"special_requirements,omitempty"`
	LocationType        string     `json:"location_type"`
	ServiceAddress      *string    `json:"service_address,omitempty"`
	CancellationReason  *string    `json:"cancellation_reason,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	ServiceName  string `json:"service_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

type CreateProviderInput struct {
	BusinessName string
	Bio          *string
	Phone        string
}

type CreateServiceInput struct {
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
}

type CreateBookingInput struct {
	ServiceID           uint
	BookingDate         time.Time
	StartTime           time.Time
	EndTime             *time.Time
	SpecialRequirements *string
	LocationType        string
	ServiceAddress      *string
}

type BookingFilter struct {
	Status    *Status
	ServiceID *uint
	DateFrom  *time.Time
	DateTo    *time.Time
}
