package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"marketplace-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id uint) (*Store, error)
	GetByUserID(ctx context.Context, userID uint) (*Store, error)
	List(ctx context.Context, search *string, limit, page int32) ([]*Store, error)
	Update(ctx context.Context, id uint, input UpdateStoreInput) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Store) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateStore"),
		zap.Uint("user_id", s.UserID),
	)

	query := `
		INSERT INTO stores (user_id, name, description, phone, address, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.Name, s.Description, s.Phone, s.Address,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrStoreExists
		}
		log.Error("failed to create store", zap.Error(err))
		return err
	}

	log.Info("store created", zap.Uint("store_id", s.ID))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Store, error) {
	query := `
		SELECT id, user_id, name, description, phone, address, is_active, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var s Store
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Description, &s.Phone, &s.Address,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) (*Store, error) {
	query := `
		SELECT id, user_id, name, description, phone, address, is_active, created_at, updated_at
		FROM stores
		WHERE user_id = $1
	`

	var s Store
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Description, &s.Phone, &s.Address,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context, search *string, limit, page int32) ([]*Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListStores"),
	)

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	where := []string{"is_active = true"}
	args := []any{}

	if search != nil && *search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*search+"%")
	}

	query := `
		SELECT id, user_id, name, description, phone, address, is_active, created_at, updated_at
		FROM stores
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []*Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Description, &s.Phone, &s.Address,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, &s)
	}

	return result, rows.Err()
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateStoreInput) error {
	set := []string{}
	args := []any{}

	if input.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *input.Name)
	}
	if input.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", len(args)+1))
		args = append(args, *input.Description)
	}
	if input.Phone != nil {
		set = append(set, fmt.Sprintf("phone = $%d", len(args)+1))
		args = append(args, *input.Phone)
	}
	if input.Address != nil {
		set = append(set, fmt.Sprintf("address = $%d", len(args)+1))
		args = append(args, *input.Address)
	}
	if input.IsActive != nil {
		set = append(set, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *input.IsActive)
	}

	if len(set) == 0 {
		return ErrNothingToUpdate
	}

	set = append(set, "updated_at = NOW()")
	query := fmt.Sprintf(
		"UPDATE stores SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStoreNotFound
	}

	return nil
}
