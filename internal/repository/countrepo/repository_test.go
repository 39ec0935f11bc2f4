package countrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
)

var countCols = []string{"id", "name", "cut_off_date", "warehouse_id", "warehouse_name", "status",
	"created_by", "creator_username", "created_at", "closed_at", "items_count"}

func newRepo(t *testing.T) (*CountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCountRepository(db, time.Second, logger.Nop()), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	cutOff := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`^WITH c AS \( INSERT INTO inventory_counts .* RETURNING .* \) SELECT c\.id, .* FROM c ` +
		regexp.QuoteMeta("JOIN warehouses w ON w.id = c.warehouse_id JOIN users u ON u.id = c.created_by") + `$`).
		WithArgs("Cierre enero", cutOff, int64(10), "in_progress", int64(1), now).
		WillReturnRows(sqlmock.NewRows(countCols).
			AddRow(int64(7), "Cierre enero", cutOff, int64(10), "Central", "in_progress", int64(1), "admin", now, nil, 0))

	c, err := repo.Create(context.Background(), domain.InventoryCount{
		Name: "Cierre enero", CutOffDate: cutOff, WarehouseID: 10, CreatedBy: 1, CreatedAt: now,
	})

	require.NoError(t, err)
	assert.EqualValues(t, 7, c.ID)
	assert.Equal(t, "Central", c.WarehouseName)
	assert.Equal(t, "admin", c.CreatorUsername)
	assert.Equal(t, domain.CountInProgress, c.Status)
	assert.Nil(t, c.ClosedAt)
	assert.Zero(t, c.ItemsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(countCols).
			AddRow(int64(7), "C", now, int64(10), "Central", "closed", int64(1), "admin", now, now, 3))

	c, err := repo.FindByID(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, c.IsClosed())
	require.NotNil(t, c.ClosedAt)
	assert.Equal(t, 3, c.ItemsCount)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(countCols))

	_, err = repo.FindByID(context.Background(), 8)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestList_CombinesFilters(t *testing.T) {
	repo, mock := newRepo(t)
	wid := int64(10)
	status := domain.CountInProgress

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.warehouse_id = $1 AND c.status = $2")).
		WithArgs(int64(10), "in_progress").
		WillReturnRows(sqlmock.NewRows(countCols))

	got, err := repo.List(context.Background(), domain.CountFilter{WarehouseID: &wid, Status: &status})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NoFilters(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`ORDER BY c.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(countCols).
			AddRow(int64(1), "A", now, int64(10), "Central", "in_progress", int64(1), "admin", now, nil, 0).
			AddRow(int64(2), "B", now, int64(11), "Norte", "closed", int64(1), "admin", now, now, 5))

	got, err := repo.List(context.Background(), domain.CountFilter{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestClose(t *testing.T) {
	closedAt := time.Now().UTC()

	t.Run("em andamento", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE inventory_counts")).
			WithArgs("closed", closedAt, int64(7), "in_progress").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Close(context.Background(), 7, closedAt))
	})

	t.Run("já fechada", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE inventory_counts")).
			WithArgs("closed", closedAt, int64(7), "in_progress").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.IsType(t, &apperror.InvalidStateError{}, repo.Close(context.Background(), 7, closedAt))
	})
}
