package cart

import (
	"context"
	"database/sql"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetOrCreateCart(ctx context.Context, userID uint) (*Cart, error)
	GetCartWithItems(ctx context.Context, userID uint) (*Cart, error)
	GetItemByID(ctx context.Context, itemID uint) (*CartItem, error)
	GetItemByCartAndProduct(ctx context.Context, cartID, productID uint) (*CartItem, error)
	CreateItem(ctx context.Context, item *CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, itemID uint) error
	ClearCart(ctx context.Context, cartID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetOrCreateCart returns the user's cart, creating it lazily on first access.
func (r *repository) GetOrCreateCart(ctx context.Context, userID uint) (*Cart, error) {
	var c Cart

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		err = r.db.QueryRowContext(ctx, `
			INSERT INTO carts (user_id)
			VALUES ($1)
			RETURNING id, user_id, created_at, updated_at
		`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetCartWithItems(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartWithItems"),
		zap.Uint("user_id", userID),
	)

	c, err := r.GetOrCreateCart(ctx, userID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price,
			ci.created_at, ci.updated_at,
			p.name, p.store_id, COALESCE(s.name, ''), p.stock_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		LEFT JOIN stores s ON s.id = p.store_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC
	`, c.ID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ProductName, &item.StoreID, &item.StoreName, &item.StockOnHand,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		c.Items = append(c.Items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *repository) GetItemByID(ctx context.Context, itemID uint) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price,
		       ci.created_at, ci.updated_at, c.user_id
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE ci.id = $1
	`, itemID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price,
		&item.CreatedAt, &item.UpdatedAt, &item.OwnerID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetItemByCartAndProduct(ctx context.Context, cartID, productID uint) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, quantity, price, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *CartItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCartItem"),
		zap.Uint("cart_id", item.CartID),
		zap.Uint("product_id", item.ProductID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, item.CartID, item.ProductID, item.Quantity, item.Price).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return err
	}

	log.Info("cart item created", zap.Uint("cart_item_id", item.ID))
	return nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, itemID uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) ClearCart(ctx context.Context, cartID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
