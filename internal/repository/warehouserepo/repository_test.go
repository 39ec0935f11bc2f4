package warehouserepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
)

func newRepo(t *testing.T) (*WarehouseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWarehouseRepository(db, time.Second, logger.Nop()), mock
}

var warehouseCols = []string{"id", "name", "location", "capacity", "created_at", "updated_at"}

func TestCreateWarehouse(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO warehouses (name, location, capacity)")).
		WithArgs("Central", "Bogotá", 500).
		WillReturnRows(sqlmock.NewRows(warehouseCols).AddRow(int64(1), "Central", "Bogotá", 500, now, now))

	w, err := repo.CreateWarehouse(context.Background(), domain.Warehouse{Name: "Central", Location: "Bogotá", Capacity: 500})

	require.NoError(t, err)
	assert.EqualValues(t, 1, w.ID)
	assert.Equal(t, 500, w.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWarehouseByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM warehouses WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(warehouseCols))

	_, err := repo.GetWarehouseByID(context.Background(), 9)

	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarehouseExists(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.WarehouseExists(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetWarehousesByIDs(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	got, err := repo.GetWarehousesByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(warehouseCols).
			AddRow(int64(1), "A", "X", 10, now, now).
			AddRow(int64(2), "B", "Y", 20, now, now))

	got, err = repo.GetWarehousesByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWarehouse(t *testing.T) {
	t.Run("sucesso", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM warehouses")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteWarehouse(context.Background(), 1))
	})

	t.Run("inexistente", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM warehouses")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.IsType(t, &apperror.NotFoundError{}, repo.DeleteWarehouse(context.Background(), 1))
	})

	t.Run("referenciada", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM warehouses")).
			WithArgs(int64(1)).
			WillReturnError(&pq.Error{Code: "23503"})

		assert.IsType(t, &apperror.ConflictError{}, repo.DeleteWarehouse(context.Background(), 1))
	})
}
