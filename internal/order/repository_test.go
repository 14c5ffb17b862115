package order

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLineRows() *sqlmock.Rows {
	// Two stores: store 10 holds product 7 (qty 2 @ 10.00), store 11
	// holds product 8 (qty 1 @ 50.00). Rows arrive sorted by store.
	return sqlmock.NewRows([]string{
		"product_id", "quantity", "price", "name", "stock_quantity", "store_id", "store_name",
	}).
		AddRow(7, 2, 10.00, "Widget", 5, 10, "Widget Store").
		AddRow(8, 1, 50.00, "Gadget", 1, 11, "Gadget Store")
}

func TestRepository_CreateFromCart(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	params := CheckoutParams{
		UserID: 1,
		ShippingAddress: Address{
			Street: "1 Main St", City: "Springfield", State: "IL",
			PostalCode: "62701", Country: "US",
		},
		PaymentMethod: "bank_transfer",
	}

	t.Run("SplitsCartIntoOnePerStore", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery("FOR UPDATE OF p").
			WithArgs(3).
			WillReturnRows(cartLineRows())

		// store 10
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(sqlmock.AnyArg(), 1, 10, StatusPending, 20.00,
				sqlmock.AnyArg(), sqlmock.AnyArg(), nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(100, now, now))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(100, 7, "Widget", 2, 10.00).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(500))
		mock.ExpectExec("UPDATE products").
			WithArgs(2, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO payments").
			WithArgs(100, 20.00, "bank_transfer").
			WillReturnResult(sqlmock.NewResult(1, 1))

		// store 11
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(sqlmock.AnyArg(), 1, 11, StatusPending, 50.00,
				sqlmock.AnyArg(), sqlmock.AnyArg(), nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(101, now, now))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(101, 8, "Gadget", 1, 50.00).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(501))
		mock.ExpectExec("UPDATE products").
			WithArgs(1, 8).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO payments").
			WithArgs(101, 50.00, "bank_transfer").
			WillReturnResult(sqlmock.NewResult(2, 1))

		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM carts").
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		orders, err := repo.CreateFromCart(ctx, params)
		require.NoError(t, err)
		require.Len(t, orders, 2)

		assert.Equal(t, uint(10), orders[0].StoreID)
		assert.Equal(t, 20.00, orders[0].TotalAmount)
		assert.Equal(t, uint(11), orders[1].StoreID)
		assert.Equal(t, 50.00, orders[1].TotalAmount)
		assert.Len(t, orders[0].Items, 1)
		assert.Equal(t, StatusPending, orders[0].Status)
		assert.NotEmpty(t, orders[0].OrderNumber)
		assert.NotEqual(t, orders[0].OrderNumber, orders[1].OrderNumber)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ShortageAbortsBeforeAnyWrite", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		short := sqlmock.NewRows([]string{
			"product_id", "quantity", "price", "name", "stock_quantity", "store_id", "store_name",
		}).
			AddRow(7, 2, 10.00, "Widget", 5, 10, "Widget Store").
			AddRow(8, 1, 50.00, "Gadget", 0, 11, "Gadget Store")

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery("FOR UPDATE OF p").
			WithArgs(3).
			WillReturnRows(short)
		mock.ExpectRollback()

		_, err = repo.CreateFromCart(ctx, params)

		var se *StockShortageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, uint(8), se.ProductID)
		assert.Equal(t, "Gadget", se.ProductName)
		assert.Equal(t, 0, se.Available)

		// no inserts, no decrements, no cart deletion happened
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoCart", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts").
			WithArgs(1).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err = repo.CreateFromCart(ctx, params)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CartWithoutItems", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery("FOR UPDATE OF p").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{
				"product_id", "quantity", "price", "name", "stock_quantity", "store_id", "store_name",
			}))
		mock.ExpectRollback()

		_, err = repo.CreateFromCart(ctx, params)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConditionalDecrementRefused", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		single := sqlmock.NewRows([]string{
			"product_id", "quantity", "price", "name", "stock_quantity", "store_id", "store_name",
		}).AddRow(7, 2, 10.00, "Widget", 2, 10, "Widget Store")

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery("FOR UPDATE OF p").
			WithArgs(3).
			WillReturnRows(single)
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(sqlmock.AnyArg(), 1, 10, StatusPending, 20.00,
				sqlmock.AnyArg(), sqlmock.AnyArg(), nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(100, now, now))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(100, 7, "Widget", 2, 10.00).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(500))
		// the guarded update refuses: someone else took the stock
		mock.ExpectExec("UPDATE products").
			WithArgs(2, 7).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err = repo.CreateFromCart(ctx, params)

		var se *StockShortageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, uint(7), se.ProductID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingOrderRestoresStock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectExec("UPDATE products p").
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusCancelled, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Cancel(ctx, 5)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeliveredOrderRejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("delivered"))
		mock.ExpectRollback()

		err = repo.Cancel(ctx, 5)

		var te *InvalidTransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, StatusDelivered, te.From)
		assert.Equal(t, StatusCancelled, te.To)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OrderMissing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(5).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err = repo.Cancel(ctx, 5)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstShipmentCreatesDelivery", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("processing"))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusShipped, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("INSERT INTO deliveries").
			WithArgs(5, DeliveryStatusInTransit, DeliveryMethodStandard, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err = repo.UpdateStatus(ctx, 5, StatusShipped)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExistingDeliveryNotDuplicated", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("processing"))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusShipped, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectCommit()

		err = repo.UpdateStatus(ctx, 5, StatusShipped)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ShippedToShippedRejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("shipped"))
		mock.ExpectRollback()

		err = repo.UpdateStatus(ctx, 5, StatusShipped)

		var te *InvalidTransitionError
		require.ErrorAs(t, err, &te)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StoreCancellationRestoresStock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("confirmed"))
		mock.ExpectExec("UPDATE products p").
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusCancelled, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.UpdateStatus(ctx, 5, StatusCancelled)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Statistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery("FROM orders").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"count", "pending", "shipped", "delivered", "revenue",
		}).AddRow(12, 3, 2, 6, 480.50))

	s, err := repo.Statistics(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 12, s.TotalOrders)
	assert.Equal(t, 3, s.PendingOrders)
	assert.Equal(t, 480.50, s.TotalRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
