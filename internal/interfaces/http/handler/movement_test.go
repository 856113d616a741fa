package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	inventoryapp "github.com/bazaartech/backend/internal/application/inventory"
	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/bazaartech/backend/internal/infrastructure/queue"
	"github.com/bazaartech/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newMovementTestRouter(repo *MockStockMovementRepository) (*gin.Engine, *queue.InMemoryTaskQueue) {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	taskQueue := queue.NewInMemoryTaskQueue(16, 10*time.Millisecond)
	dispatcher := inventoryapp.NewDispatcher(taskQueue, nil, zap.NewNop())
	service := inventoryapp.NewMovementService(repo, dispatcher, zap.NewNop())
	h := NewMovementHandler(service)

	r := gin.New()
	r.POST("/movements", h.Create)
	r.GET("/movements", h.List)
	r.GET("/movements/:id", h.GetByID)
	return r, taskQueue
}

func TestMovementHandlerCreate(t *testing.T) {
	t.Run("valid movement accepted and enqueued", func(t *testing.T) {
		repo := new(MockStockMovementRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		r, taskQueue := newMovementTestRouter(repo)

		body, _ := json.Marshal(gin.H{
			"store_id":   uuid.NewString(),
			"product_id": uuid.NewString(),
			"kind":       "IN",
			"quantity":   10,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/movements", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		depth, err := taskQueue.Len(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), depth)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		repo := new(MockStockMovementRepository)
		r, _ := newMovementTestRouter(repo)

		body, _ := json.Marshal(gin.H{
			"store_id":   uuid.NewString(),
			"product_id": uuid.NewString(),
			"kind":       "SIDEWAYS",
			"quantity":   10,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/movements", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
		assert.Contains(t, w.Body.String(), "kind: Must be one of: IN, OUT, REMOVE")
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		repo := new(MockStockMovementRepository)
		r, _ := newMovementTestRouter(repo)

		body, _ := json.Marshal(gin.H{
			"store_id":   uuid.NewString(),
			"product_id": uuid.NewString(),
			"kind":       "OUT",
			"quantity":   -5,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/movements", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "quantity: Must be greater than or equal to 0")
	})
}

func TestMovementHandlerGetByID(t *testing.T) {
	t.Run("missing movement is 404", func(t *testing.T) {
		repo := new(MockStockMovementRepository)
		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		r, _ := newMovementTestRouter(repo)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movements/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		repo := new(MockStockMovementRepository)
		r, _ := newMovementTestRouter(repo)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movements/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMovementHandlerList(t *testing.T) {
	repo := new(MockStockMovementRepository)
	storeID := uuid.New()
	productID := uuid.New()

	movement, err := inventory.NewStockMovement(storeID, productID, nil, inventory.MovementIn, 5)
	require.NoError(t, err)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["kind"] == "IN" && f.Page == 2 && f.PageSize == 10
	})).Return([]inventory.StockMovement{*movement}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(11), nil)

	r, _ := newMovementTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movements?kind=IN&page=2&page_size=10", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Meta    struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}
