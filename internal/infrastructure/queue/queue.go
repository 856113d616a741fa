package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue errors
var (
	ErrQueueFull   = errors.New("task queue is full")
	ErrQueueClosed = errors.New("task queue is closed")
	ErrNoHandler   = errors.New("no handler registered for task")
)

// Task is one unit of background work. Args carries the handler's
// JSON-encoded payload; delivery is at-least-once, so handlers must be
// idempotent.
type Task struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Args       json.RawMessage `json:"args"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// NewTask creates a task with JSON-encoded args
func NewTask(name string, args interface{}) (Task, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:         uuid.New(),
		Name:       name,
		Args:       payload,
		EnqueuedAt: time.Now(),
	}, nil
}

// DecodeArgs unmarshals the task args into out
func (t *Task) DecodeArgs(out interface{}) error {
	return json.Unmarshal(t.Args, out)
}

// TaskQueue accepts tasks for asynchronous execution
type TaskQueue interface {
	Enqueue(ctx context.Context, task Task) error
}

// TaskSource yields tasks for workers. Dequeue blocks up to the
// implementation's poll timeout and returns (nil, nil) when no task
// arrived in that window.
type TaskSource interface {
	Dequeue(ctx context.Context) (*Task, error)
}

// Handler processes one task
type Handler func(ctx context.Context, task Task) error

// Registry maps task names to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty handler registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to a task name, replacing any previous binding
func (r *Registry) Register(name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Get returns the handler for a task name
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}
