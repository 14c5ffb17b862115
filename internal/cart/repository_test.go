package cart

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetOrCreateCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("ExistingCart", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
			AddRow(3, 1, now, now)
		mock.ExpectQuery("SELECT id, user_id, created_at, updated_at").
			WithArgs(1).
			WillReturnRows(rows)

		c, err := repo.GetOrCreateCart(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, uint(3), c.ID)
		assert.Equal(t, uint(1), c.UserID)
	})

	t.Run("LazyCreate", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, created_at, updated_at").
			WithArgs(2).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("INSERT INTO carts").
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
				AddRow(4, 2, now, now))

		c, err := repo.GetOrCreateCart(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, uint(4), c.ID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCartWithItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, created_at, updated_at").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
			AddRow(3, 1, now, now))

	itemRows := sqlmock.NewRows([]string{
		"id", "cart_id", "product_id", "quantity", "price",
		"created_at", "updated_at", "name", "store_id", "store_name", "stock_quantity",
	}).
		AddRow(50, 3, 7, 2, 9.99, now, now, "Widget", 10, "Widget Store", 5).
		AddRow(51, 3, 8, 1, 20.00, now, now, "Gadget", 11, "Gadget Store", 2)

	mock.ExpectQuery("FROM cart_items ci").
		WithArgs(3).
		WillReturnRows(itemRows)

	c, err := repo.GetCartWithItems(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "Widget", c.Items[0].ProductName)
	assert.Equal(t, uint(10), c.Items[0].StoreID)
	assert.Equal(t, 39.98, c.TotalAmount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetItemByCartAndProduct_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT id, cart_id, product_id").
		WithArgs(3, 7).
		WillReturnError(sql.ErrNoRows)

	item, err := repo.GetItemByCartAndProduct(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO cart_items").
		WithArgs(3, 7, 2, 9.99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(50, now, now))

	item := &CartItem{CartID: 3, ProductID: 7, Quantity: 2, Price: 9.99}
	err = repo.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, uint(50), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateItemQuantity_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE cart_items").
		WithArgs(5, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateItemQuantity(context.Background(), 99, 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM cart_items WHERE id").
		WithArgs(50).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.RemoveItem(context.Background(), 50)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
