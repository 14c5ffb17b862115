package wishlist

import (
	"context"
	"database/sql"

	"marketplace-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]*Item, error)
	Add(ctx context.Context, userID, productID uint) (*Item, error)
	Remove(ctx context.Context, userID, productID uint) error
	Contains(ctx context.Context, userID, productID uint) (bool, error)
	Clear(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListWishlist"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
		       p.name, p.price, p.stock_quantity > 0, COALESCE(s.name, '')
		FROM wishlists w
		JOIN products p ON p.id = w.product_id
		LEFT JOIN stores s ON s.id = p.store_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt,
			&it.ProductName, &it.ProductPrice, &it.InStock, &it.StoreName,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *repository) Add(ctx context.Context, userID, productID uint) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, user_id, product_id, created_at
	`, userID, productID).Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return nil, ErrAlreadyInWishlist
		case pgFKViolation:
			return nil, ErrProductNotFound
		}
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) Remove(ctx context.Context, userID, productID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotInWishlist
	}

	return nil
}

func (r *repository) Contains(ctx context.Context, userID, productID uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM wishlists WHERE user_id = $1 AND product_id = $2)
	`, userID, productID).Scan(&exists)
	return exists, err
}

func (r *repository) Clear(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wishlists WHERE user_id = $1`, userID)
	return err
}
