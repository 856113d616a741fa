package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) received() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func newDepletedEvent(t *testing.T) shared.DomainEvent {
	t.Helper()
	balance, err := inventory.NewStockBalance(uuid.New(), uuid.New())
	require.NoError(t, err)
	return inventory.NewStockDepletedEvent(balance)
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribed handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{inventory.EventStockDepleted}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newDepletedEvent(t)))
		assert.Equal(t, 1, handler.received())
	})

	t.Run("does not deliver other event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{inventory.EventStockReconciled}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newDepletedEvent(t)))
		assert.Equal(t, 0, handler.received())
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newDepletedEvent(t)))
		assert.Equal(t, 1, handler.received())
	})

	t.Run("failing handler does not block others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{inventory.EventStockDepleted}, err: errors.New("boom")}
		healthy := &recordingHandler{types: []string{inventory.EventStockDepleted}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newDepletedEvent(t)))
		assert.Equal(t, 1, healthy.received())
	})

	t.Run("panicking handler is recovered", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicky := &recordingHandler{types: []string{inventory.EventStockDepleted}, panics: true}
		healthy := &recordingHandler{types: []string{inventory.EventStockDepleted}}
		bus.Subscribe(panicky)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newDepletedEvent(t)))
		assert.Equal(t, 1, healthy.received())
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{inventory.EventStockDepleted}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, newDepletedEvent(t)))
		assert.Equal(t, 0, handler.received())
	})
}
