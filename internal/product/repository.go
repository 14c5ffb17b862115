package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, filter *ListFilter, limit, page int32) ([]*Product, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) error
	Deactivate(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.Uint("store_id", p.StoreID),
	)

	query := `
		INSERT INTO products (store_id, category_id, name, description, price, stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.StoreID, p.CategoryID, p.Name, p.Description, p.Price, p.StockQuantity,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	query := `
		SELECT
			p.id, p.store_id, p.category_id, p.name, p.description,
			p.price, p.stock_quantity, p.is_active,
			COALESCE(s.name, ''),
			p.created_at, p.updated_at
		FROM products p
		LEFT JOIN stores s ON s.id = p.store_id
		WHERE p.id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description,
		&p.Price, &p.StockQuantity, &p.IsActive,
		&p.StoreName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, filter *ListFilter, limit, page int32) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

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

	where := []string{"p.is_active = true"}
	args := []any{}

	if filter != nil {
		if filter.CategoryID != nil {
			where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)+1))
			args = append(args, *filter.CategoryID)
		}
		if filter.StoreID != nil {
			where = append(where, fmt.Sprintf("p.store_id = $%d", len(args)+1))
			args = append(args, *filter.StoreID)
		}
		if filter.Search != nil && *filter.Search != "" {
			where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)+1))
			args = append(args, "%"+*filter.Search+"%")
		}
		if filter.MinPrice != nil {
			where = append(where, fmt.Sprintf("p.price >= $%d", len(args)+1))
			args = append(args, *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			where = append(where, fmt.Sprintf("p.price <= $%d", len(args)+1))
			args = append(args, *filter.MaxPrice)
		}
		if filter.InStock != nil {
			if *filter.InStock {
				where = append(where, "p.stock_quantity > 0")
			} else {
				where = append(where, "p.stock_quantity = 0")
			}
		}
	}

	query := `
		SELECT
			p.id, p.store_id, p.category_id, p.name, p.description,
			p.price, p.stock_quantity, p.is_active,
			COALESCE(s.name, ''),
			p.created_at, p.updated_at
		FROM products p
		LEFT JOIN stores s ON s.id = p.store_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY p.created_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	result := make([]*Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description,
			&p.Price, &p.StockQuantity, &p.IsActive,
			&p.StoreName,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("products listed",
		zap.Int("count", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateProductInput) error {
	set := []string{}
	args := []any{}

	if input.CategoryID != nil {
		set = append(set, fmt.Sprintf("category_id = $%d", len(args)+1))
		args = append(args, *input.CategoryID)
	}
	if input.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *input.Name)
	}
	if input.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", len(args)+1))
		args = append(args, *input.Description)
	}
	if input.Price != nil {
		set = append(set, fmt.Sprintf("price = $%d", len(args)+1))
		args = append(args, *input.Price)
	}
	if input.StockQuantity != nil {
		set = append(set, fmt.Sprintf("stock_quantity = $%d", len(args)+1))
		args = append(args, *input.StockQuantity)
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
		"UPDATE products SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Deactivate hides a product instead of deleting it, so historical order
// items keep a valid reference.
func (r *repository) Deactivate(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
