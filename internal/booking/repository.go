package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"marketplace-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateProvider(ctx context.Context, p *Provider) error
	GetProviderByID(ctx context.Context, id uint) (*Provider, error)
	GetProviderByUserID(ctx context.Context, userID uint) (*Provider, error)
	ListProviders(ctx context.Context, limit, page int32) ([]*Provider, error)

	CreateService(ctx context.Context, s *Service) error
	GetServiceByID(ctx context.Context, id uint) (*Service, error)
	ListServices(ctx context.Context, providerID *uint, limit, page int32) ([]*Service, error)

	CreateBooking(ctx context.Context, b *Booking) error
	GetBookingByID(ctx context.Context, id uint) (*Booking, error)
	ListByClient(ctx context.Context, clientID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error)
	ListByProvider(ctx context.Context, providerID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error)

	// UpdateBookingStatus validates the transition under a row lock
	// and stamps completed_at / cancelled_at where applicable.
	UpdateBookingStatus(ctx context.Context, bookingID uint, to Status, reason *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProvider(ctx context.Context, p *Provider) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO service_providers (user_id, business_name, bio, phone, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.BusinessName, p.Bio, p.Phone).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
		return ErrProviderExists
	}
	if err != nil {
		return err
	}
	p.IsActive = true
	return nil
}

func (r *repository) GetProviderByID(ctx context.Context, id uint) (*Provider, error) {
	return r.getProvider(ctx, "id", id)
}

func (r *repository) GetProviderByUserID(ctx context.Context, userID uint) (*Provider, error) {
	return r.getProvider(ctx, "user_id", userID)
}

func (r *repository) getProvider(ctx context.Context, col string, val uint) (*Provider, error) {
	var p Provider
	query := fmt.Sprintf(`
		SELECT id, user_id, business_name, bio, phone, is_active, created_at, updated_at
		FROM service_providers
		WHERE %s = $1
	`, col)

	err := r.db.QueryRowContext(ctx, query, val).Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.Bio, &p.Phone,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListProviders(ctx context.Context, limit, page int32) ([]*Provider, error) {
	limit, offset := clampPage(limit, page)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, business_name, bio, phone, is_active, created_at, updated_at
		FROM service_providers
		WHERE is_active = true
		ORDER BY business_name ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.BusinessName, &p.Bio, &p.Phone,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		providers = append(providers, &p)
	}

	return providers, rows.Err()
}

func (r *repository) CreateService(ctx context.Context, s *Service) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO services (provider_id, name, description, price, duration_minutes, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, created_at, updated_at
	`, s.ProviderID, s.Name, s.Description, s.Price, s.DurationMinutes).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return err
	}
	s.IsActive = true
	return nil
}

func (r *repository) GetServiceByID(ctx context.Context, id uint) (*Service, error) {
	var s Service
	err := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.provider_id, s.name, s.description, s.price,
		       s.duration_minutes, s.is_active, COALESCE(sp.business_name, ''),
		       s.created_at, s.updated_at
		FROM services s
		LEFT JOIN service_providers sp ON sp.id = s.provider_id
		WHERE s.id = $1
	`, id).Scan(
		&s.ID, &s.ProviderID, &s.Name, &s.Description, &s.Price,
		&s.DurationMinutes, &s.IsActive, &s.ProviderName,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListServices(ctx context.Context, providerID *uint, limit, page int32) ([]*Service, error) {
	limit, offset := clampPage(limit, page)

	where := "s.is_active = true"
	args := []interface{}{}
	if providerID != nil {
		args = append(args, *providerID)
		where += fmt.Sprintf(" AND s.provider_id = $%d", len(args))
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT s.id, s.provider_id, s.name, s.description, s.price,
		       s.duration_minutes, s.is_active, COALESCE(sp.business_name, ''),
		       s.created_at, s.updated_at
		FROM services s
		LEFT JOIN service_providers sp ON sp.id = s.provider_id
		WHERE %s
		ORDER BY s.name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(
			&s.ID, &s.ProviderID, &s.Name, &s.Description, &s.Price,
			&s.DurationMinutes, &s.IsActive, &s.ProviderName,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, &s)
	}

	return services, rows.Err()
}

func (r *repository) CreateBooking(ctx context.Context, b *Booking) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateBooking"),
		zap.Uint("client_id", b.ClientID),
		zap.Uint("service_id", b.ServiceID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO service_bookings (
			booking_reference, client_id, service_provider_id, service_id,
			booking_date, start_time, end_time, status, total_price,
			special_requirements, location_type, service_address
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at
	`,
		b.BookingReference, b.ClientID, b.ProviderID, b.ServiceID,
		b.BookingDate, b.StartTime, b.EndTime, b.Status, b.TotalPrice,
		b.SpecialRequirements, b.LocationType, b.ServiceAddress,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
		return ErrReferenceConflict
	}
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	log.Info("booking created", zap.String("booking_reference", b.BookingReference))
	return nil
}

func (r *repository) GetBookingByID(ctx context.Context, id uint) (*Booking, error) {
	var b Booking
	err := r.db.QueryRowContext(ctx, `
		SELECT b.id, b.booking_reference, b.client_id, b.service_provider_id,
		       b.service_id, b.booking_date, b.start_time, b.end_time,
		       b.status, b.total_price, b.special_requirements,
		       b.location_type, b.service_address, b.cancellation_reason,
		       b.completed_at, b.cancelled_at, b.created_at, b.updated_at,
		       COALESCE(s.name, ''), COALESCE(sp.business_name, '')
		FROM service_bookings b
		LEFT JOIN services s ON s.id = b.service_id
		LEFT JOIN service_providers sp ON sp.id = b.service_provider_id
		WHERE b.id = $1
	`, id).Scan(
		&b.ID, &b.BookingReference, &b.ClientID, &b.ProviderID,
		&b.ServiceID, &b.BookingDate, &b.StartTime, &b.EndTime,
		&b.Status, &b.TotalPrice, &b.SpecialRequirements,
		&b.LocationType, &b.ServiceAddress, &b.CancellationReason,
		&b.CompletedAt, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
		&b.ServiceName, &b.ProviderName,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error) {
	return r.list(ctx, "b.client_id", clientID, filter, limit, page)
}

func (r *repository) ListByProvider(ctx context.Context, providerID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error) {
	return r.list(ctx, "b.service_provider_id", providerID, filter, limit, page)
}

func (r *repository) list(ctx context.Context, ownerCol string, ownerID uint, filter *BookingFilter, limit, page int32) ([]*Booking, error) {
	where := []string{fmt.Sprintf("%s = $1", ownerCol)}
	args := []interface{}{ownerID}

	if filter != nil {
		if filter.Status != nil {
			args = append(args, *filter.Status)
			where = append(where, fmt.Sprintf("b.status = $%d", len(args)))
		}
		if filter.ServiceID != nil {
			args = append(args, *filter.ServiceID)
			where = append(where, fmt.Sprintf("b.service_id = $%d", len(args)))
		}
		if filter.DateFrom != nil {
			args = append(args, *filter.DateFrom)
			where = append(where, fmt.Sprintf("b.booking_date >= $%d", len(args)))
		}
		if filter.DateTo != nil {
			args = append(args, *filter.DateTo)
			where = append(where, fmt.Sprintf("b.booking_date <= $%d", len(args)))
		}
	}

	limit, offset := clampPage(limit, page)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT b.id, b.booking_reference, b.client_id, b.service_provider_id,
		       b.service_id, b.booking_date, b.start_time, b.end_time,
		       b.status, b.total_price, b.special_requirements,
		       b.location_type, b.service_address, b.cancellation_reason,
		       b.completed_at, b.cancelled_at, b.created_at, b.updated_at,
		       COALESCE(s.name, ''), COALESCE(sp.business_name, '')
		FROM service_bookings b
		LEFT JOIN services s ON s.id = b.service_id
		LEFT JOIN service_providers sp ON sp.id = b.service_provider_id
		WHERE %s
		ORDER BY b.booking_date DESC, b.id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.BookingReference, &b.ClientID, &b.ProviderID,
			&b.ServiceID, &b.BookingDate, &b.StartTime, &b.EndTime,
			&b.Status, &b.TotalPrice, &b.SpecialRequirements,
			&b.LocationType, &b.ServiceAddress, &b.CancellationReason,
			&b.CompletedAt, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
			&b.ServiceName, &b.ProviderName,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

func (r *repository) UpdateBookingStatus(ctx context.Context, bookingID uint, to Status, reason *string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateBookingStatus"),
		zap.Uint("booking_id", bookingID),
		zap.String("to_status", string(to)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var current Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM service_bookings WHERE id = $1 FOR UPDATE
	`, bookingID).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	if !CanTransition(current, to) {
		return &InvalidTransitionError{From: current, To: to}
	}

	switch to {
	case StatusCompleted:
		_, err = tx.ExecContext(ctx, `
			UPDATE service_bookings
			SET status = $1, completed_at = NOW(), updated_at = NOW()
			WHERE id = $2
		`, to, bookingID)
	case StatusCancelled:
		_, err = tx.ExecContext(ctx, `
			UPDATE service_bookings
			SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW()
			WHERE id = $3
		`, to, reason, bookingID)
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE service_bookings
			SET status = $1, updated_at = NOW()
			WHERE id = $2
		`, to, bookingID)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	log.Info("booking status updated", zap.String("from_status", string(current)))
	return nil
}

func clampPage(limit, page int32) (int32, int32) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
