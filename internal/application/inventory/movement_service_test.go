package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMovementService(f *reconcilerFixture, taskQueue *recordingTaskQueue) *MovementService {
	dispatcher := NewDispatcher(taskQueue, f.reconciler, zap.NewNop())
	return NewMovementService(f.movements, dispatcher, zap.NewNop())
}

func TestMovementServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists movement then dispatches exactly one task", func(t *testing.T) {
		f := newReconcilerFixture()
		taskQueue := &recordingTaskQueue{}
		svc := newMovementService(f, taskQueue)

		input := CreateMovementInput{
			StoreID:   uuid.New(),
			ProductID: uuid.New(),
			Kind:      inventory.MovementIn,
			Quantity:  12,
		}

		f.movements.On("Save", ctx, mock.MatchedBy(func(m *inventory.StockMovement) bool {
			return m.StoreID == input.StoreID && m.Kind == inventory.MovementIn && m.Quantity == 12 && !m.Processed
		})).Return(nil)

		response, err := svc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, inventory.MovementIn, response.Kind)
		assert.False(t, response.Processed)

		tasks := taskQueue.enqueued()
		require.Len(t, tasks, 1)
		var args reconcileTaskArgs
		require.NoError(t, tasks[0].DecodeArgs(&args))
		assert.Equal(t, response.ID, args.MovementID)
	})

	t.Run("create succeeds even when reconciliation fails inline", func(t *testing.T) {
		f := newReconcilerFixture()
		taskQueue := &recordingTaskQueue{err: errors.New("queue unavailable")}
		svc := newMovementService(f, taskQueue)

		input := CreateMovementInput{
			StoreID:   uuid.New(),
			ProductID: uuid.New(),
			Kind:      inventory.MovementOut,
			Quantity:  3,
		}

		f.movements.On("Save", ctx, mock.Anything).Return(nil)
		// Inline reconciliation hits a broken database; the create still succeeds
		f.movements.On("FindByID", ctx, mock.Anything).Return(nil, errors.New("db down"))

		response, err := svc.Create(ctx, input)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, response.ID)
	})

	t.Run("rejects invalid input without dispatching", func(t *testing.T) {
		f := newReconcilerFixture()
		taskQueue := &recordingTaskQueue{}
		svc := newMovementService(f, taskQueue)

		_, err := svc.Create(ctx, CreateMovementInput{
			StoreID:   uuid.New(),
			ProductID: uuid.New(),
			Kind:      "SIDEWAYS",
			Quantity:  1,
		})
		require.Error(t, err)
		assert.Empty(t, taskQueue.enqueued())
		f.movements.AssertNotCalled(t, "Save")
	})

	t.Run("save failure surfaces and nothing is dispatched", func(t *testing.T) {
		f := newReconcilerFixture()
		taskQueue := &recordingTaskQueue{}
		svc := newMovementService(f, taskQueue)

		f.movements.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Create(ctx, CreateMovementInput{
			StoreID:   uuid.New(),
			ProductID: uuid.New(),
			Kind:      inventory.MovementIn,
			Quantity:  1,
		})
		require.Error(t, err)
		assert.Empty(t, taskQueue.enqueued())
	})
}

func TestMovementServiceList(t *testing.T) {
	ctx := context.Background()
	f := newReconcilerFixture()
	svc := newMovementService(f, &recordingTaskQueue{})

	storeID := uuid.New()
	processed := true
	movement := newMovement(t, inventory.MovementIn, 5)

	f.movements.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["store_id"] == storeID &&
			filter.Filters["kind"] == "IN" &&
			filter.Filters["processed"] == true &&
			filter.Page == 1 && filter.PageSize == 20
	})).Return([]inventory.StockMovement{*movement}, nil)
	f.movements.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	responses, total, err := svc.List(ctx, MovementListFilter{
		StoreID:   &storeID,
		Kind:      "IN",
		Processed: &processed,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, movement.ID, responses[0].ID)
}
