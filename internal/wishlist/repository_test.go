package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "product_id", "created_at",
		"name", "price", "in_stock", "store_name",
	}).
		AddRow(1, 1, 7, now, "Widget", 9.99, true, "Widget Store").
		AddRow(2, 1, 8, now, "Gadget", 50.00, false, "Gadget Store")

	mock.ExpectQuery("FROM wishlists w").
		WithArgs(1).
		WillReturnRows(rows)

	items, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].InStock)
	assert.False(t, items[1].InStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Add(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO wishlists").
			WithArgs(1, 7).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "created_at"}).
				AddRow(1, 1, 7, now))

		it, err := repo.Add(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), it.ProductID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO wishlists").
			WithArgs(1, 7).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Add(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrAlreadyInWishlist)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO wishlists").
			WithArgs(1, 999).
			WillReturnError(&pq.Error{Code: "23503"})

		_, err := repo.Add(context.Background(), 1, 999)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM wishlists").
			WithArgs(1, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Remove(context.Background(), 1, 7))
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM wishlists").
			WithArgs(1, 8).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Remove(context.Background(), 1, 8), ErrNotInWishlist)
	})
}

func TestRepository_Contains(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, 7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Contains(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}
