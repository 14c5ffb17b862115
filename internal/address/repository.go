package address

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"marketplace-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) ([]*Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)

	Create(ctx context.Context, addr *Address) error
	Update(ctx context.Context, id uuid.UUID, input UpdateAddressInput) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	ClearDefault(ctx context.Context, userID uint) error
	SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id, label, phone,
	street, unit, city, state, postal_code, country,
	is_default, is_active, created_at, updated_at
`

func scanAddress(row interface{ Scan(...interface{}) error }, a *Address) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Phone,
		&a.Street, &a.Unit, &a.City, &a.State, &a.PostalCode, &a.Country,
		&a.IsDefault, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetAddressesByUserID"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE user_id = $1 AND is_active = true
		ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		var a Address
		if err := scanAddress(rows, &a); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	var a Address
	err := scanAddress(r.db.QueryRowContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE id = $1 AND is_active = true
	`, id), &a)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateAddress"),
		zap.String("address_id", addr.ID.String()),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO addresses (
			id, user_id, label, phone,
			street, unit, city, state, postal_code, country,
			is_default, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at
	`,
		addr.ID, addr.UserID, addr.Label, addr.Phone,
		addr.Street, addr.Unit, addr.City, addr.State, addr.PostalCode, addr.Country,
		addr.IsDefault, addr.IsActive,
	).Scan(&addr.CreatedAt, &addr.UpdatedAt)

	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, input UpdateAddressInput) error {
	var set []string
	var args []interface{}

	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Label != nil {
		add("label", *input.Label)
	}
	if input.Phone != nil {
		add("phone", *input.Phone)
	}
	if input.Street != nil {
		add("street", *input.Street)
	}
	if input.Unit != nil {
		add("unit", *input.Unit)
	}
	if input.City != nil {
		add("city", *input.City)
	}
	if input.State != nil {
		add("state", *input.State)
	}
	if input.PostalCode != nil {
		add("postal_code", *input.PostalCode)
	}
	if input.Country != nil {
		add("country", *input.Country)
	}

	if len(set) == 0 {
		return ErrNothingToUpdate
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE addresses SET %s WHERE id = $%d AND is_active = true",
		strings.Join(set, ", "), len(args),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	return nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE addresses
		SET is_active = false, is_default = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	return nil
}

func (r *repository) ClearDefault(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = false, updated_at = NOW()
		WHERE user_id = $1 AND is_default = true
	`, userID)
	return err
}

func (r *repository) SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = true, updated_at = NOW()
		WHERE user_id = $1 AND id = $2 AND is_active = true
	`, userID, addressID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	return nil
}
