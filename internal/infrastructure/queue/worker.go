package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bazaartech/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WorkerPool runs a fixed number of goroutines that pull tasks from a
// TaskSource and dispatch them through a Registry. Redelivery of failed
// tasks is the queue's concern; the pool only reports outcomes.
type WorkerPool struct {
	source      TaskSource
	registry    *Registry
	logger      *zap.Logger
	concurrency int
	running     atomic.Bool
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool
func NewWorkerPool(source TaskSource, registry *Registry, concurrency int, logger *zap.Logger) *WorkerPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &WorkerPool{
		source:      source,
		registry:    registry,
		logger:      logger.Named("worker"),
		concurrency: concurrency,
	}
}

// Start launches the workers. It is a no-op if the pool is already running.
func (p *WorkerPool) Start(ctx context.Context) {
	if !p.running.CompareAndSwap(false, true) {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.run(runCtx, i)
	}

	p.logger.Info("worker pool started", zap.Int("concurrency", p.concurrency))
}

// Stop cancels the workers and waits for in-flight tasks to finish or the
// context to expire.
func (p *WorkerPool) Stop(ctx context.Context) error {
	if !p.running.CompareAndSwap(true, false) {
		return nil
	}
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *WorkerPool) run(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, err := p.source.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, ErrQueueClosed) {
				return
			}
			p.logger.Error("dequeue failed", zap.Int("worker", id), zap.Error(err))
			// Back off briefly so a broken source does not spin the CPU
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if task == nil {
			continue
		}

		p.handle(ctx, id, *task)
	}
}

func (p *WorkerPool) handle(ctx context.Context, workerID int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task handler panicked",
				zap.Int("worker", workerID),
				zap.String("task", task.Name),
				zap.String("task_id", task.ID.String()),
				zap.Any("panic", r),
			)
		}
	}()

	handler, ok := p.registry.Get(task.Name)
	if !ok {
		p.logger.Error("no handler registered for task",
			zap.String("task", task.Name),
			zap.String("task_id", task.ID.String()),
		)
		return
	}

	start := time.Now()
	err := handler(ctx, task)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		p.logger.Debug("task processed",
			zap.Int("worker", workerID),
			zap.String("task", task.Name),
			zap.String("task_id", task.ID.String()),
			zap.Duration("elapsed", elapsed),
		)
	case isTransient(err):
		// The queue's redelivery policy owns the retry; just surface it
		p.logger.Warn("task failed with transient error",
			zap.String("task", task.Name),
			zap.String("task_id", task.ID.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	default:
		p.logger.Error("task failed",
			zap.String("task", task.Name),
			zap.String("task_id", task.ID.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	}
}

func isTransient(err error) bool {
	var transient *shared.TransientError
	return errors.As(err, &transient)
}
