package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketplace-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateFromCart runs the whole checkout in a single transaction:
	// lock cart rows, validate stock, insert one order per store,
	// decrement stock, record a pending payment per order, delete the
	// cart. Any error rolls back everything.
	CreateFromCart(ctx context.Context, params CheckoutParams) ([]*Order, error)

	GetByID(ctx context.Context, orderID uint) (*Order, error)
	GetDetail(ctx context.Context, orderID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint, filter *ListFilter, limit, page int32) ([]*Order, error)
	ListByStore(ctx context.Context, storeID uint, filter *ListFilter, limit, page int32) ([]*Order, error)

	// Cancel restores stock for every item and marks the order
	// cancelled, atomically. Fails unless the order is still pending
	// or confirmed.
	Cancel(ctx context.Context, orderID uint) error

	// UpdateStatus applies a store-side transition. The first
	// transition into shipped creates the order's delivery record.
	UpdateStatus(ctx context.Context, orderID uint, to Status) error

	Statistics(ctx context.Context, storeID uint) (*StoreStatistics, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// cartLine is one locked cart row with its product and store loaded.
type cartLine struct {
	ProductID   uint
	ProductName string
	Quantity    int
	Price       float64
	StoreID     uint
	StoreName   string
	Stock       int
}

func (r *repository) CreateFromCart(ctx context.Context, params CheckoutParams) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCart"),
		zap.Uint("user_id", params.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var cartID uint
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM carts WHERE user_id = $1
	`, params.UserID).Scan(&cartID)
	if err == sql.ErrNoRows {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	// Lock every product row touched by the cart. Ordering by store
	// then product keeps grouping deterministic and avoids deadlocks
	// between concurrent checkouts.
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, ci.price,
		       p.name, p.stock_quantity, p.store_id, s.name
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		JOIN stores s ON s.id = p.store_id
		WHERE ci.cart_id = $1
		ORDER BY p.store_id ASC, ci.product_id ASC
		FOR UPDATE OF p
	`, cartID)
	if err != nil {
		log.Error("failed to lock cart lines", zap.Error(err))
		return nil, err
	}

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(
			&l.ProductID, &l.Quantity, &l.Price,
			&l.ProductName, &l.Stock, &l.StoreID, &l.StoreName,
		); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Validate every line before touching anything, so the error names
	// the first short product in deterministic order.
	for _, l := range lines {
		if l.Stock < l.Quantity {
			log.Warn("stock shortage aborts checkout",
				zap.Uint("product_id", l.ProductID),
				zap.Int("requested", l.Quantity),
				zap.Int("available", l.Stock),
			)
			return nil, &StockShortageError{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Requested:   l.Quantity,
				Available:   l.Stock,
			}
		}
	}

	billing := params.ShippingAddress
	if params.BillingAddress != nil {
		billing = *params.BillingAddress
	}

	shippingJSON, err := json.Marshal(params.ShippingAddress)
	if err != nil {
		return nil, err
	}
	billingJSON, err := json.Marshal(billing)
	if err != nil {
		return nil, err
	}

	// Lines arrive sorted by store, so groups are contiguous runs.
	var orders []*Order
	orderDate := time.Now().UTC()

	for start := 0; start < len(lines); {
		end := start
		for end < len(lines) && lines[end].StoreID == lines[start].StoreID {
			end++
		}
		group := lines[start:end]

		var total float64
		for _, l := range group {
			total += float64(l.Quantity) * l.Price
		}

		o := &Order{
			OrderNumber:     GenerateOrderNumber(),
			UserID:          params.UserID,
			StoreID:         group[0].StoreID,
			StoreName:       group[0].StoreName,
			Status:          StatusPending,
			TotalAmount:     total,
			ShippingAddress: params.ShippingAddress,
			BillingAddress:  billing,
			Notes:           params.Notes,
			OrderDate:       orderDate,
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (
				order_number, user_id, store_id, status, total_amount,
				shipping_address, billing_address, notes, order_date
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id, created_at, updated_at
		`,
			o.OrderNumber, o.UserID, o.StoreID, o.Status, o.TotalAmount,
			shippingJSON, billingJSON, o.Notes, o.OrderDate,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
				return nil, ErrNumberConflict
			}
			log.Error("failed to insert order", zap.Error(err))
			return nil, err
		}

		for _, l := range group {
			var item OrderItem
			err = tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
				VALUES ($1,$2,$3,$4,$5)
				RETURNING id
			`, o.ID, l.ProductID, l.ProductName, l.Quantity, l.Price).Scan(&item.ID)
			if err != nil {
				log.Error("failed to insert order item", zap.Error(err))
				return nil, err
			}
			item.OrderID = o.ID
			item.ProductID = l.ProductID
			item.ProductName = l.ProductName
			item.Quantity = l.Quantity
			item.Price = l.Price
			o.Items = append(o.Items, &item)

			// Conditional decrement backs up the row locks: the update
			// refuses to take stock below zero even if the earlier
			// read was somehow stale.
			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock_quantity = stock_quantity - $1, updated_at = NOW()
				WHERE id = $2 AND stock_quantity >= $1
			`, l.Quantity, l.ProductID)
			if err != nil {
				log.Error("failed to decrement stock", zap.Error(err))
				return nil, err
			}
			affected, _ := res.RowsAffected()
			if affected == 0 {
				return nil, &StockShortageError{
					ProductID:   l.ProductID,
					ProductName: l.ProductName,
					Requested:   l.Quantity,
					Available:   l.Stock,
				}
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO payments (order_id, amount, payment_method, status)
			VALUES ($1,$2,$3,'pending')
		`, o.ID, o.TotalAmount, params.PaymentMethod)
		if err != nil {
			log.Error("failed to insert payment", zap.Error(err))
			return nil, err
		}

		orders = append(orders, o)
		start = end
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("checkout committed",
		zap.Int("order_count", len(orders)),
		zap.Uint("cart_id", cartID),
	)

	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	var shippingJSON, billingJSON []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.order_number, o.user_id, o.store_id, o.status,
		       o.total_amount, o.shipping_address, o.billing_address,
		       o.notes, o.order_date, o.created_at, o.updated_at,
		       COALESCE(s.name, '')
		FROM orders o
		LEFT JOIN stores s ON s.id = o.store_id
		WHERE o.id = $1
	`, orderID).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.StoreID, &o.Status,
		&o.TotalAmount, &shippingJSON, &billingJSON,
		&o.Notes, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt,
		&o.StoreName,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(shippingJSON, &o.ShippingAddress); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(billingJSON, &o.BillingAddress); err != nil {
		return nil, err
	}

	return &o, nil
}

// GetDetail loads the order with its items and, when present, its
// delivery record.
func (r *repository) GetDetail(ctx context.Context, orderID uint) (*Order, error) {
	o, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.Price,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var d Delivery
	err = r.db.QueryRowContext(ctx, `
		SELECT id, order_id, status, method, estimated_delivery_date,
		       created_at, updated_at
		FROM deliveries
		WHERE order_id = $1
	`, orderID).Scan(
		&d.ID, &d.OrderID, &d.Status, &d.Method,
		&d.EstimatedDeliveryDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == nil {
		o.Delivery = &d
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, filter *ListFilter, limit, page int32) ([]*Order, error) {
	return r.list(ctx, "o.user_id", userID, filter, limit, page)
}

func (r *repository) ListByStore(ctx context.Context, storeID uint, filter *ListFilter, limit, page int32) ([]*Order, error) {
	return r.list(ctx, "o.store_id", storeID, filter, limit, page)
}

func (r *repository) list(ctx context.Context, ownerCol string, ownerID uint, filter *ListFilter, limit, page int32) ([]*Order, error) {
	where := []string{fmt.Sprintf("%s = $1", ownerCol)}
	args := []interface{}{ownerID}

	if filter != nil {
		if filter.Status != nil {
			args = append(args, *filter.Status)
			where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
		}
		if filter.DateFrom != nil {
			args = append(args, *filter.DateFrom)
			where = append(where, fmt.Sprintf("o.order_date >= $%d", len(args)))
		}
		if filter.DateTo != nil {
			args = append(args, *filter.DateTo)
			where = append(where, fmt.Sprintf("o.order_date <= $%d", len(args)))
		}
	}

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
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT o.id, o.order_number, o.user_id, o.store_id, o.status,
		       o.total_amount, o.shipping_address, o.billing_address,
		       o.notes, o.order_date, o.created_at, o.updated_at,
		       COALESCE(s.name, '')
		FROM orders o
		LEFT JOIN stores s ON s.id = o.store_id
		WHERE %s
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		var shippingJSON, billingJSON []byte
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.StoreID, &o.Status,
			&o.TotalAmount, &shippingJSON, &billingJSON,
			&o.Notes, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt,
			&o.StoreName,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(shippingJSON, &o.ShippingAddress); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(billingJSON, &o.BillingAddress); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}

func (r *repository) Cancel(ctx context.Context, orderID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Cancel"),
		zap.Uint("order_id", orderID),
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
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if !Cancellable(current) {
		return &InvalidTransitionError{From: current, To: StatusCancelled}
	}

	if err := restoreStock(ctx, tx, orderID); err != nil {
		log.Error("failed to restore stock", zap.Error(err))
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, StatusCancelled, orderID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	log.Info("order cancelled", zap.String("from_status", string(current)))
	return nil
}

// restoreStock gives back every item's quantity inside the caller's
// transaction.
func restoreStock(ctx context.Context, tx *sql.Tx, orderID uint) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE products p
		SET stock_quantity = p.stock_quantity + oi.quantity, updated_at = NOW()
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = p.id
	`, orderID)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, to Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.Uint("order_id", orderID),
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
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if !CanTransition(current, to) {
		return &InvalidTransitionError{From: current, To: to}
	}

	if to == StatusCancelled {
		if err := restoreStock(ctx, tx, orderID); err != nil {
			log.Error("failed to restore stock", zap.Error(err))
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, to, orderID); err != nil {
		return err
	}

	if to == StatusShipped {
		// The row lock above serializes shipping transitions, and the
		// transition check rejects shipped->shipped, so this runs at
		// most once per order.
		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM deliveries WHERE order_id = $1)
		`, orderID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			estimated := time.Now().UTC().AddDate(0, 0, 3)
			_, err = tx.ExecContext(ctx, `
				INSERT INTO deliveries (order_id, status, method, estimated_delivery_date)
				VALUES ($1,$2,$3,$4)
			`, orderID, DeliveryStatusInTransit, DeliveryMethodStandard, estimated)
			if err != nil {
				log.Error("failed to create delivery", zap.Error(err))
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	log.Info("order status updated", zap.String("from_status", string(current)))
	return nil
}

func (r *repository) Statistics(ctx context.Context, storeID uint) (*StoreStatistics, error) {
	var s StoreStatistics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'shipped'),
			COUNT(*) FILTER (WHERE status = 'delivered'),
			COALESCE(SUM(total_amount) FILTER (WHERE status NOT IN ('cancelled','refunded')), 0)
		FROM orders
		WHERE store_id = $1
	`, storeID).Scan(
		&s.TotalOrders, &s.PendingOrders, &s.ShippedOrders,
		&s.DeliveredOrders, &s.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
