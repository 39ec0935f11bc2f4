package productrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/cache"
	"stockcount/internal/pkg/logger"
)

var productCols = []string{"id", "name", "description", "price", "packaging_unit", "units_per_package", "created_at", "updated_at"}

func newRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := cache.NewFromRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	return NewProductRepository(db, client, time.Second, time.Minute, logger.Nop()), mock, mr
}

func TestGetProductByID_CacheAside(t *testing.T) {
	repo, mock, mr := newRepo(t)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(productCols).AddRow(int64(5), "Arroz", "", "19.90", "Caja", 12, now, now))

	first, err := repo.GetProductByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 12, first.UnitsPerPackage)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("19.90")))
	assert.True(t, mr.Exists("product:5"))

	// segunda leitura vem do cache, sem nova query
	second, err := repo.GetProductByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, second.Price.Equal(first.Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByID_NotFound(t *testing.T) {
	repo, mock, mr := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := repo.GetProductByID(context.Background(), 9)

	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.False(t, mr.Exists("product:9"))
}

func TestUpdateProduct_InvalidatesCache(t *testing.T) {
	repo, mock, mr := newRepo(t)
	now := time.Now()
	require.NoError(t, mr.Set("product:5", `{"id":5,"name":"velho"}`))

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
		WillReturnRows(sqlmock.NewRows(productCols).AddRow(int64(5), "Arroz", "", "21.00", "Caja", 24, now, now))

	updated, err := repo.UpdateProduct(context.Background(), domain.Product{
		ID: 5, Name: "Arroz", Price: decimal.RequireFromString("21.00"), PackagingUnit: "Caja", UnitsPerPackage: 24,
	})

	require.NoError(t, err)
	assert.Equal(t, 24, updated.UnitsPerPackage)
	assert.False(t, mr.Exists("product:5"))
}

func TestDeleteProduct(t *testing.T) {
	repo, mock, mr := newRepo(t)
	require.NoError(t, mr.Set("product:5", "{}"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteProduct(context.Background(), 5))
	assert.False(t, mr.Exists("product:5"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.IsType(t, &apperror.NotFoundError{}, repo.DeleteProduct(context.Background(), 6))
}
