package queue

import (
	"context"
	"sync"
	"time"
)

// InMemoryTaskQueue is a buffered-channel task queue for single-process
// deployments and tests. Enqueue never blocks; a full buffer returns
// ErrQueueFull so callers can fall back to inline processing.
type InMemoryTaskQueue struct {
	tasks       chan Task
	pollTimeout time.Duration
	closeOnce   sync.Once
	closed      chan struct{}
}

// NewInMemoryTaskQueue creates an in-memory task queue
func NewInMemoryTaskQueue(bufferSize int, pollTimeout time.Duration) *InMemoryTaskQueue {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	return &InMemoryTaskQueue{
		tasks:       make(chan Task, bufferSize),
		pollTimeout: pollTimeout,
		closed:      make(chan struct{}),
	}
}

// Enqueue adds a task to the buffer without blocking
func (q *InMemoryTaskQueue) Enqueue(ctx context.Context, task Task) error {
	select {
	case <-q.closed:
		return ErrQueueClosed
	default:
	}

	select {
	case q.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue blocks up to the poll timeout waiting for a task, returning
// (nil, nil) when nothing arrived.
func (q *InMemoryTaskQueue) Dequeue(ctx context.Context) (*Task, error) {
	timer := time.NewTimer(q.pollTimeout)
	defer timer.Stop()

	select {
	case task, ok := <-q.tasks:
		if !ok {
			return nil, ErrQueueClosed
		}
		return &task, nil
	case <-q.closed:
		// Drain what was buffered before close
		select {
		case task := <-q.tasks:
			return &task, nil
		default:
			return nil, ErrQueueClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, nil
	}
}

// Len returns the number of buffered tasks
func (q *InMemoryTaskQueue) Len(ctx context.Context) (int64, error) {
	return int64(len(q.tasks)), nil
}

// Close marks the queue closed; buffered tasks remain drainable
func (q *InMemoryTaskQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
	return nil
}

var (
	_ TaskQueue  = (*InMemoryTaskQueue)(nil)
	_ TaskSource = (*InMemoryTaskQueue)(nil)
)
