package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTask(t *testing.T) {
	t.Run("round-trips args", func(t *testing.T) {
		type payload struct {
			MovementID string `json:"movement_id"`
		}

		task, err := NewTask("inventory.reconcile", payload{MovementID: "abc"})
		require.NoError(t, err)
		assert.Equal(t, "inventory.reconcile", task.Name)
		assert.NotEqual(t, "", task.ID.String())

		var decoded payload
		require.NoError(t, task.DecodeArgs(&decoded))
		assert.Equal(t, "abc", decoded.MovementID)
	})

	t.Run("rejects unmarshalable args", func(t *testing.T) {
		_, err := NewTask("bad", make(chan int))
		assert.Error(t, err)
	})
}

func TestInMemoryTaskQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueue then dequeue", func(t *testing.T) {
		q := NewInMemoryTaskQueue(4, 100*time.Millisecond)
		task, err := NewTask("noop", nil)
		require.NoError(t, err)

		require.NoError(t, q.Enqueue(ctx, task))
		got, err := q.Dequeue(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("dequeue times out empty", func(t *testing.T) {
		q := NewInMemoryTaskQueue(4, 20*time.Millisecond)
		got, err := q.Dequeue(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("full buffer rejects enqueue", func(t *testing.T) {
		q := NewInMemoryTaskQueue(1, 20*time.Millisecond)
		task, err := NewTask("noop", nil)
		require.NoError(t, err)

		require.NoError(t, q.Enqueue(ctx, task))
		err = q.Enqueue(ctx, task)
		assert.ErrorIs(t, err, ErrQueueFull)
	})

	t.Run("closed queue rejects enqueue but drains buffer", func(t *testing.T) {
		q := NewInMemoryTaskQueue(4, 20*time.Millisecond)
		task, err := NewTask("noop", nil)
		require.NoError(t, err)
		require.NoError(t, q.Enqueue(ctx, task))
		require.NoError(t, q.Close())

		assert.ErrorIs(t, q.Enqueue(ctx, task), ErrQueueClosed)

		got, err := q.Dequeue(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)

		_, err = q.Dequeue(ctx)
		assert.ErrorIs(t, err, ErrQueueClosed)
	})

	t.Run("dequeue honors context cancellation", func(t *testing.T) {
		q := NewInMemoryTaskQueue(4, time.Minute)
		cancelCtx, cancel := context.WithCancel(ctx)

		done := make(chan error, 1)
		go func() {
			_, err := q.Dequeue(cancelCtx)
			done <- err
		}()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("dequeue did not return after cancellation")
		}
	})
}

func TestWorkerPool(t *testing.T) {
	ctx := context.Background()

	t.Run("processes enqueued tasks", func(t *testing.T) {
		q := NewInMemoryTaskQueue(16, 10*time.Millisecond)
		registry := NewRegistry()

		var processed atomic.Int32
		var wg sync.WaitGroup
		wg.Add(3)
		registry.Register("count", func(ctx context.Context, task Task) error {
			processed.Add(1)
			wg.Done()
			return nil
		})

		pool := NewWorkerPool(q, registry, 2, zap.NewNop())
		pool.Start(ctx)
		defer pool.Stop(ctx) //nolint:errcheck

		for i := 0; i < 3; i++ {
			task, err := NewTask("count", nil)
			require.NoError(t, err)
			require.NoError(t, q.Enqueue(ctx, task))
		}

		waitDone := make(chan struct{})
		go func() {
			wg.Wait()
			close(waitDone)
		}()
		select {
		case <-waitDone:
		case <-time.After(2 * time.Second):
			t.Fatal("tasks were not processed in time")
		}
		assert.Equal(t, int32(3), processed.Load())
	})

	t.Run("recovers from panicking handler", func(t *testing.T) {
		q := NewInMemoryTaskQueue(16, 10*time.Millisecond)
		registry := NewRegistry()

		var survived sync.WaitGroup
		survived.Add(1)
		registry.Register("panic", func(ctx context.Context, task Task) error {
			panic("handler exploded")
		})
		registry.Register("ok", func(ctx context.Context, task Task) error {
			survived.Done()
			return nil
		})

		pool := NewWorkerPool(q, registry, 1, zap.NewNop())
		pool.Start(ctx)
		defer pool.Stop(ctx) //nolint:errcheck

		panicTask, err := NewTask("panic", nil)
		require.NoError(t, err)
		okTask, err := NewTask("ok", nil)
		require.NoError(t, err)

		require.NoError(t, q.Enqueue(ctx, panicTask))
		require.NoError(t, q.Enqueue(ctx, okTask))

		done := make(chan struct{})
		go func() {
			survived.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not survive handler panic")
		}
	})

	t.Run("stop waits for in-flight task", func(t *testing.T) {
		q := NewInMemoryTaskQueue(16, 10*time.Millisecond)
		registry := NewRegistry()

		started := make(chan struct{})
		var finished atomic.Bool
		registry.Register("slow", func(ctx context.Context, task Task) error {
			close(started)
			time.Sleep(50 * time.Millisecond)
			finished.Store(true)
			return nil
		})

		pool := NewWorkerPool(q, registry, 1, zap.NewNop())
		pool.Start(ctx)

		task, err := NewTask("slow", nil)
		require.NoError(t, err)
		require.NoError(t, q.Enqueue(ctx, task))

		<-started
		stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		require.NoError(t, pool.Stop(stopCtx))
		assert.True(t, finished.Load())
	})

	t.Run("unknown task name is dropped", func(t *testing.T) {
		q := NewInMemoryTaskQueue(16, 10*time.Millisecond)
		pool := NewWorkerPool(q, NewRegistry(), 1, zap.NewNop())
		pool.Start(ctx)

		task, err := NewTask("missing", nil)
		require.NoError(t, err)
		require.NoError(t, q.Enqueue(ctx, task))

		time.Sleep(50 * time.Millisecond)
		stopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		require.NoError(t, pool.Stop(stopCtx))
		depth, err := q.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), depth)
	})
}
