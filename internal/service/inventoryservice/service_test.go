package inventoryservice_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/service/inventoryservice"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) UpsertStandalone(ctx context.Context, warehouseID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error) {
	args := m.Called(ctx, warehouseID, productID, packagesCount, quantity)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) CreateInCount(ctx context.Context, countID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error) {
	args := m.Called(ctx, countID, productID, packagesCount, quantity)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) (domain.InventoryItem, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) ListStandaloneByWarehouse(ctx context.Context, warehouseID int64) ([]domain.InventoryDetail, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]domain.InventoryDetail), args.Error(1)
}

func (m *MockItemRepository) StandaloneQuantity(ctx context.Context, warehouseID, productID int64) (int, error) {
	args := m.Called(ctx, warehouseID, productID)
	return args.Int(0), args.Error(1)
}

type MockCountRepository struct {
	mock.Mock
}

func (m *MockCountRepository) FindByID(ctx context.Context, id int64) (domain.InventoryCount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.InventoryCount), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

// memItems reproduz em memória a semântica de upsert do estoque avulso.
type memItems struct {
	MockItemRepository
	nextID int64
	rows   map[[2]int64]*domain.InventoryItem
}

func newMemItems() *memItems {
	return &memItems{rows: map[[2]int64]*domain.InventoryItem{}}
}

func (m *memItems) UpsertStandalone(_ context.Context, warehouseID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error) {
	key := [2]int64{warehouseID, productID}
	row, ok := m.rows[key]
	if !ok {
		m.nextID++
		row = &domain.InventoryItem{ID: m.nextID, WarehouseID: warehouseID, ProductID: productID, CreatedAt: time.Now()}
		m.rows[key] = row
	}
	row.PackagesCount += packagesCount
	row.Quantity += quantity
	return *row, nil
}

type fixture struct {
	items      *MockItemRepository
	counts     *MockCountRepository
	warehouses *MockWarehouseRepository
	products   *MockProductRepository
	svc        *inventoryservice.Service
}

func newFixture() *fixture {
	f := &fixture{
		items:      new(MockItemRepository),
		counts:     new(MockCountRepository),
		warehouses: new(MockWarehouseRepository),
		products:   new(MockProductRepository),
	}
	f.svc = inventoryservice.NewService(f.items, f.counts, f.warehouses, f.products, logger.Nop())
	return f
}

var (
	admin   = domain.NewActor(1, "admin", domain.RoleAdmin, nil)
	userW10 = domain.NewActor(2, "maria", domain.RoleUser, []int64{10})
	userW20 = domain.NewActor(3, "joao", domain.RoleUser, []int64{20})

	caja12  = domain.Product{ID: 3, Name: "Arroz", UnitsPerPackage: 12, PackagingUnit: "Caja"}
	central = domain.Warehouse{ID: 10, Name: "Central", Location: "Bogotá"}
)

func int64Ptr(v int64) *int64 { return &v }

// --- AddStandaloneInventoryItem ---

func TestAddStandalone_Accumulates(t *testing.T) {
	items := newMemItems()
	warehouses := new(MockWarehouseRepository)
	products := new(MockProductRepository)
	svc := inventoryservice.NewService(items, new(MockCountRepository), warehouses, products, logger.Nop())

	warehouses.On("GetWarehouseByID", mock.Anything, int64(10)).Return(central, nil)
	products.On("GetProductByID", mock.Anything, int64(3)).Return(caja12, nil)

	first, err := svc.AddStandaloneInventoryItem(context.Background(), userW10,
		domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: 5})
	require.NoError(t, err)
	assert.Equal(t, 60, first.Quantity)

	second, err := svc.AddStandaloneInventoryItem(context.Background(), userW10,
		domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: 10})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 180, second.Quantity)
	assert.Equal(t, 15, second.PackagesCount)
	assert.Len(t, items.rows, 1)
}

func TestAddStandalone_UpsertsWithComputedQuantity(t *testing.T) {
	f := newFixture()
	f.products.On("GetProductByID", mock.Anything, int64(3)).Return(caja12, nil)
	f.warehouses.On("GetWarehouseByID", mock.Anything, int64(10)).Return(central, nil)
	f.items.On("UpsertStandalone", mock.Anything, int64(10), int64(3), 10, 120).
		Return(domain.InventoryItem{ID: 1, WarehouseID: 10, ProductID: 3, PackagesCount: 10, Quantity: 120}, nil)

	item, err := f.svc.AddStandaloneInventoryItem(context.Background(), admin,
		domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: 10})

	require.NoError(t, err)
	assert.Equal(t, 120, item.Quantity)
	f.items.AssertExpectations(t)
}

func TestAddStandalone_Forbidden(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AddStandaloneInventoryItem(context.Background(), userW20,
		domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: 1})

	assert.IsType(t, &apperror.ForbiddenError{}, err)
	f.products.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
}

func TestAddStandalone_NegativePackages(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AddStandaloneInventoryItem(context.Background(), admin,
		domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: -2})

	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestAddStandalone_QuantityAboveColumnLimit(t *testing.T) {
	f := newFixture()
	f.products.On("GetProductByID", mock.Anything, int64(3)).Return(caja12, nil)
	f.warehouses.On("GetWarehouseByID", mock.Anything, int64(10)).Return(central, nil)

	_, err := f.svc.AddStandaloneInventoryItem(context.Background(), admin,
		domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: math.MaxInt64 / 8})

	assert.IsType(t, &apperror.ValidationError{}, err)
	f.items.AssertNotCalled(t, "UpsertStandalone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddStandalone_MissingProductOrWarehouse(t *testing.T) {
	t.Run("produto", func(t *testing.T) {
		f := newFixture()
		f.products.On("GetProductByID", mock.Anything, int64(3)).Return(domain.Product{}, apperror.NewNotFoundError("Produto"))

		_, err := f.svc.AddStandaloneInventoryItem(context.Background(), admin,
			domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: 1})
		assert.IsType(t, &apperror.NotFoundError{}, err)
	})

	t.Run("armazém", func(t *testing.T) {
		f := newFixture()
		f.products.On("GetProductByID", mock.Anything, int64(3)).Return(caja12, nil)
		f.warehouses.On("GetWarehouseByID", mock.Anything, int64(10)).Return(domain.Warehouse{}, apperror.NewNotFoundError("Armazém"))

		_, err := f.svc.AddStandaloneInventoryItem(context.Background(), admin,
			domain.InventoryItemInput{WarehouseID: 10, ProductID: 3, PackagesCount: 1})
		assert.IsType(t, &apperror.NotFoundError{}, err)
	})
}

func TestAddStandalone_WithCount(t *testing.T) {
	open := domain.InventoryCount{ID: 7, WarehouseID: 10, Status: domain.CountInProgress}
	closedAt := time.Now()
	closed := domain.InventoryCount{ID: 7, WarehouseID: 10, Status: domain.CountClosed, ClosedAt: &closedAt}
	other := domain.InventoryCount{ID: 7, WarehouseID: 20, Status: domain.CountInProgress}

	tests := []struct {
		name    string
		count   domain.InventoryCount
		err     error
		wantErr interface{}
	}{
		{"contagem aberta cria item", open, nil, nil},
		{"contagem fechada", closed, nil, &apperror.InvalidStateError{}},
		{"contagem de outro armazém", other, nil, &apperror.ValidationError{}},
		{"contagem inexistente", domain.InventoryCount{}, apperror.NewNotFoundError("Contagem"), &apperror.NotFoundError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.products.On("GetProductByID", mock.Anything, int64(3)).Return(caja12, nil)
			f.warehouses.On("GetWarehouseByID", mock.Anything, int64(10)).Return(central, nil)
			f.counts.On("FindByID", mock.Anything, int64(7)).Return(tt.count, tt.err)
			f.items.On("CreateInCount", mock.Anything, int64(7), int64(3), 2, 24).
				Return(domain.InventoryItem{ID: 9, CountID: int64Ptr(7), WarehouseID: 10, Quantity: 24}, nil)

			item, err := f.svc.AddStandaloneInventoryItem(context.Background(), admin,
				domain.InventoryItemInput{CountID: int64Ptr(7), WarehouseID: 10, ProductID: 3, PackagesCount: 2})

			if tt.wantErr != nil {
				assert.IsType(t, tt.wantErr, err)
				f.items.AssertNotCalled(t, "CreateInCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 24, item.Quantity)
			f.items.AssertNotCalled(t, "UpsertStandalone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// --- UpdateQuantity ---

func TestUpdateQuantity_RejectsOutOfRange(t *testing.T) {
	for _, q := range []int{0, -1, domain.MaxQuantity + 1} {
		f := newFixture()
		_, err := f.svc.UpdateQuantity(context.Background(), admin, 1, q)
		assert.IsType(t, &apperror.ValidationError{}, err)
		f.items.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	}
}

func TestUpdateQuantity_KeepsPackagesCount(t *testing.T) {
	f := newFixture()
	existing := domain.InventoryItem{ID: 1, WarehouseID: 10, PackagesCount: 10, Quantity: 120}
	f.items.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	f.items.On("UpdateQuantity", mock.Anything, int64(1), 50).
		Return(domain.InventoryItem{ID: 1, WarehouseID: 10, PackagesCount: 10, Quantity: 50}, nil)

	updated, err := f.svc.UpdateQuantity(context.Background(), userW10, 1, 50)

	require.NoError(t, err)
	assert.Equal(t, 50, updated.Quantity)
	assert.Equal(t, 10, updated.PackagesCount)
}

func TestUpdateQuantity_ForbiddenAndNotFound(t *testing.T) {
	f := newFixture()
	f.items.On("FindByID", mock.Anything, int64(1)).Return(domain.InventoryItem{ID: 1, WarehouseID: 10}, nil)
	f.items.On("FindByID", mock.Anything, int64(2)).Return(domain.InventoryItem{}, apperror.NewNotFoundError("Item"))

	_, err := f.svc.UpdateQuantity(context.Background(), userW20, 1, 5)
	assert.IsType(t, &apperror.ForbiddenError{}, err)

	_, err = f.svc.UpdateQuantity(context.Background(), admin, 2, 5)
	assert.IsType(t, &apperror.NotFoundError{}, err)

	f.items.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

// --- RemoveItem ---

func TestRemoveItem(t *testing.T) {
	f := newFixture()
	f.items.On("Delete", mock.Anything, int64(1)).Return(true, nil)
	f.items.On("Delete", mock.Anything, int64(2)).Return(false, nil)

	ok, err := f.svc.RemoveItem(context.Background(), admin, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.RemoveItem(context.Background(), admin, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.RemoveItem(context.Background(), userW10, 1)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
}

// --- Resumos ---

func TestGetWarehouseInventory(t *testing.T) {
	f := newFixture()
	f.warehouses.On("GetWarehouseByID", mock.Anything, int64(10)).Return(central, nil)
	f.items.On("ListStandaloneByWarehouse", mock.Anything, int64(10)).Return([]domain.InventoryDetail{
		{ID: 1, ProductID: 3, ProductName: "Arroz", ProductPrice: decimal.RequireFromString("19.90"), Quantity: 120},
		{ID: 2, ProductID: 4, ProductName: "Frijol", ProductPrice: decimal.RequireFromString("5.00"), Quantity: 30},
	}, nil)

	inv, err := f.svc.GetWarehouseInventory(context.Background(), userW10, 10)

	require.NoError(t, err)
	assert.Equal(t, "Central", inv.WarehouseName)
	assert.Equal(t, "Bogotá", inv.WarehouseLocation)
	assert.Equal(t, 150, inv.TotalProductsCount)
	assert.Len(t, inv.Items, 2)

	_, err = f.svc.GetWarehouseInventory(context.Background(), userW20, 10)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
}

func TestGetAllWarehouseInventory(t *testing.T) {
	f := newFixture()
	norte := domain.Warehouse{ID: 20, Name: "Norte"}
	f.warehouses.On("GetAllWarehouses", mock.Anything).Return([]domain.Warehouse{central, norte}, nil)
	f.items.On("ListStandaloneByWarehouse", mock.Anything, int64(10)).Return([]domain.InventoryDetail{{Quantity: 5}}, nil)
	f.items.On("ListStandaloneByWarehouse", mock.Anything, int64(20)).Return([]domain.InventoryDetail{}, nil)

	all, err := f.svc.GetAllWarehouseInventory(context.Background(), userW10)

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 5, all[0].TotalProductsCount)
	assert.Zero(t, all[1].TotalProductsCount)
}

func TestGetProductQuantity(t *testing.T) {
	f := newFixture()
	f.items.On("StandaloneQuantity", mock.Anything, int64(10), int64(3)).Return(0, nil)

	q, err := f.svc.GetProductQuantity(context.Background(), userW10, 10, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.ProductQuantity{WarehouseID: 10, ProductID: 3, Quantity: 0}, q)

	_, err = f.svc.GetProductQuantity(context.Background(), userW20, 10, 3)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
}
