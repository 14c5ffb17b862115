package payment

import (
	"context"
	"database/sql"
)

type Repository interface {
	GetByOrderID(ctx context.Context, orderID uint) (*Payment, error)
	ListByUser(ctx context.Context, userID uint) ([]*Payment, error)
	UpdateStatus(ctx context.Context, paymentID uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByOrderID(ctx context.Context, orderID uint) (*Payment, error) {
	var p Payment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, amount, payment_method, status, paid_at,
		       created_at, updated_at
		FROM payments
		WHERE order_id = $1
	`, orderID).Scan(
		&p.ID, &p.OrderID, &p.Amount, &p.PaymentMethod, &p.Status,
		&p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.order_id, p.amount, p.payment_method, p.status,
		       p.paid_at, p.created_at, p.updated_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE o.user_id = $1
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.OrderID, &p.Amount, &p.PaymentMethod, &p.Status,
			&p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}

	return payments, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, paymentID uint, status Status) error {
	paidAt := "NULL"
	if status == StatusPaid {
		paidAt = "NOW()"
	}

	// Only pending payments may be settled.
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $1, paid_at = `+paidAt+`, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`, status, paymentID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)
		`, paymentID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrAlreadySettled
		}
		return ErrPaymentNotFound
	}

	return nil
}
