package count_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockcount/internal/api/count"
	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/middleware"
)

type MockCountService struct {
	mock.Mock
}

func (m *MockCountService) CreateCount(ctx context.Context, actor *domain.Actor, input domain.CountInput) (domain.InventoryCount, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.InventoryCount), args.Error(1)
}

func (m *MockCountService) GetCounts(ctx context.Context, actor *domain.Actor, filter domain.CountFilter) ([]domain.InventoryCount, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]domain.InventoryCount), args.Error(1)
}

func (m *MockCountService) GetCountDetail(ctx context.Context, actor *domain.Actor, countID int64) (domain.CountDetail, error) {
	args := m.Called(ctx, actor, countID)
	return args.Get(0).(domain.CountDetail), args.Error(1)
}

func (m *MockCountService) GetCountItems(ctx context.Context, actor *domain.Actor, countID int64) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, actor, countID)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockCountService) CloseCount(ctx context.Context, actor *domain.Actor, countID int64) (domain.InventoryCount, error) {
	args := m.Called(ctx, actor, countID)
	return args.Get(0).(domain.InventoryCount), args.Error(1)
}

func (m *MockCountService) AddItemToCount(ctx context.Context, actor *domain.Actor, countID int64, input domain.CountItemInput) (domain.InventoryItem, error) {
	args := m.Called(ctx, actor, countID, input)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

var actor = domain.NewActor(2, "maria", domain.RoleUser, []int64{10})

func newRouter(svc count.CountService) http.Handler {
	h := count.NewHandler(svc, logger.Nop())
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithActor(req.Context(), actor)))
		})
	})
	r.Post("/api/inventory-counts", h.CreateCount)
	r.Get("/api/inventory-counts", h.ListCounts)
	r.Get("/api/inventory-counts/{id}", h.GetCount)
	r.Put("/api/inventory-counts/{id}/close", h.CloseCount)
	r.Post("/api/inventory-counts/{id}/items", h.AddItem)
	r.Get("/api/inventory-counts/{id}/items", h.ListItems)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateCount_Success(t *testing.T) {
	svc := new(MockCountService)
	input := domain.CountInput{Name: "Cierre enero", CutOffDate: "2025-01-31", WarehouseID: 10}
	cutOff, _ := time.Parse(domain.CutOffDateLayout, "2025-01-31")
	svc.On("CreateCount", mock.Anything, actor, input).Return(domain.InventoryCount{
		ID: 1, Name: "Cierre enero", CutOffDate: cutOff, WarehouseID: 10, Status: domain.CountInProgress,
	}, nil)

	rec := do(t, newRouter(svc), http.MethodPost, "/api/inventory-counts",
		`{"name":"Cierre enero","cut_off_date":"2025-01-31","warehouse_id":10}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-01-31", body["cut_off_date"])
	assert.Equal(t, "in_progress", body["status"])
	assert.Nil(t, body["closed_at"])
	svc.AssertExpectations(t)
}

func TestCreateCount_InvalidPayload(t *testing.T) {
	svc := new(MockCountService)

	rec := do(t, newRouter(svc), http.MethodPost, "/api/inventory-counts", `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "CreateCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCount_Forbidden(t *testing.T) {
	svc := new(MockCountService)
	svc.On("CreateCount", mock.Anything, actor, mock.Anything).
		Return(domain.InventoryCount{}, apperror.NewForbiddenError("Sem acesso ao armazém 20."))

	rec := do(t, newRouter(svc), http.MethodPost, "/api/inventory-counts",
		`{"name":"X","cut_off_date":"2025-01-31","warehouse_id":20}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"FORBIDDEN"`)
}

func TestListCounts_Filters(t *testing.T) {
	svc := new(MockCountService)
	svc.On("GetCounts", mock.Anything, actor, mock.MatchedBy(func(f domain.CountFilter) bool {
		return f.WarehouseID != nil && *f.WarehouseID == 10 && f.Status != nil && *f.Status == domain.CountClosed
	})).Return([]domain.InventoryCount{{ID: 2}, {ID: 1}}, nil)

	rec := do(t, newRouter(svc), http.MethodGet, "/api/inventory-counts?warehouse_id=10&status=closed", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestListCounts_InvalidStatus(t *testing.T) {
	svc := new(MockCountService)

	rec := do(t, newRouter(svc), http.MethodGet, "/api/inventory-counts?status=archived", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCount(t *testing.T) {
	svc := new(MockCountService)
	svc.On("GetCountDetail", mock.Anything, actor, int64(5)).Return(domain.CountDetail{
		CountView: domain.InventoryCount{ID: 5}.View(),
		Items:     []domain.InventoryItem{{ID: 1, Quantity: 120}},
	}, nil)
	svc.On("GetCountDetail", mock.Anything, actor, int64(6)).
		Return(domain.CountDetail{}, apperror.NewNotFoundError("Contagem 6"))

	router := newRouter(svc)

	rec := do(t, router, http.MethodGet, "/api/inventory-counts/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":120`)

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/inventory-counts/6", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/inventory-counts/abc", "").Code)
}

func TestCloseCount(t *testing.T) {
	svc := new(MockCountService)
	closedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	svc.On("CloseCount", mock.Anything, actor, int64(5)).
		Return(domain.InventoryCount{ID: 5, Status: domain.CountClosed, ClosedAt: &closedAt}, nil).Once()
	svc.On("CloseCount", mock.Anything, actor, int64(5)).
		Return(domain.InventoryCount{}, apperror.NewInvalidStateError("a contagem já está fechada.")).Once()

	router := newRouter(svc)

	rec := do(t, router, http.MethodPut, "/api/inventory-counts/5/close", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"closed"`)

	rec = do(t, router, http.MethodPut, "/api/inventory-counts/5/close", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_STATE")
}

func TestAddItem(t *testing.T) {
	svc := new(MockCountService)
	countID := int64(5)
	svc.On("AddItemToCount", mock.Anything, actor, countID, domain.CountItemInput{ProductID: 3, PackagesCount: 10}).
		Return(domain.InventoryItem{ID: 9, CountID: &countID, ProductID: 3, PackagesCount: 10, Quantity: 120}, nil)

	rec := do(t, newRouter(svc), http.MethodPost, "/api/inventory-counts/5/items", `{"product_id":3,"packages_count":10}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":120`)
}

func TestAddItem_NegativePackages(t *testing.T) {
	svc := new(MockCountService)

	rec := do(t, newRouter(svc), http.MethodPost, "/api/inventory-counts/5/items", `{"product_id":3,"packages_count":-1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AddItemToCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListItems(t *testing.T) {
	svc := new(MockCountService)
	svc.On("GetCountItems", mock.Anything, actor, int64(5)).Return([]domain.InventoryItem{{ID: 1}, {ID: 2}}, nil)

	rec := do(t, newRouter(svc), http.MethodGet, "/api/inventory-counts/5/items", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []domain.InventoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}
