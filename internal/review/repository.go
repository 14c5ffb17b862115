package review

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
	ListByProduct(ctx context.Context, productID uint, limit, page int32) ([]*Review, error)
	GetByID(ctx context.Context, reviewID uint) (*Review, error)
	Create(ctx context.Context, r *Review) error
	Update(ctx context.Context, reviewID uint, input UpdateReviewInput) error
	Delete(ctx context.Context, reviewID uint) error
	Summarize(ctx context.Context, productID uint) (*Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByProduct(ctx context.Context, productID uint, limit, page int32) ([]*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListReviews"),
		zap.Uint("product_id", productID),
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

	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.comment,
		       COALESCE(u.name, ''), r.created_at, r.updated_at
		FROM product_reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`, productID, limit, offset)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment,
			&rv.UserName, &rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		reviews = append(reviews, &rv)
	}

	return reviews, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, reviewID uint) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, user_id, rating, comment, created_at, updated_at
		FROM product_reviews
		WHERE id = $1
	`, reviewID).Scan(
		&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment,
		&rv.CreatedAt, &rv.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_reviews (product_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, rv.ProductID, rv.UserID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return ErrAlreadyReviewed
		case pgFKViolation:
			return ErrProductNotFound
		}
	}

	return err
}

func (r *repository) Update(ctx context.Context, reviewID uint, input UpdateReviewInput) error {
	var set []string
	var args []interface{}

	if input.Rating != nil {
		args = append(args, *input.Rating)
		set = append(set, fmt.Sprintf("rating = $%d", len(args)))
	}
	if input.Comment != nil {
		args = append(args, *input.Comment)
		set = append(set, fmt.Sprintf("comment = $%d", len(args)))
	}

	if len(set) == 0 {
		return ErrNothingToUpdate
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, reviewID)

	query := fmt.Sprintf(
		"UPDATE product_reviews SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, reviewID uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_reviews WHERE id = $1`, reviewID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func (r *repository) Summarize(ctx context.Context, productID uint) (*Summary, error) {
	var s Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM product_reviews
		WHERE product_id = $1
	`, productID).Scan(&s.AverageRating, &s.ReviewCount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
