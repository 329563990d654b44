package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/eventbus"
)

// MemoryEventBus is a synchronous in-memory implementation of the Bus interface.
// Handlers run on the emitting goroutine, in registration order.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	record    bool
	published []common.Event
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryEventBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
}

// RecordPublished makes the bus keep every emitted event for Published.
// Off by default; meant for tests.
func (b *MemoryEventBus) RecordPublished() *MemoryEventBus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record = true
	return b
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// Every handler runs even if an earlier one fails; failures are logged and joined.
func (b *MemoryEventBus) Emit(ctx context.Context, event common.Event) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", common.ErrInvalidArgument)
	}
	eventType := event.Type()

	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	if b.record {
		b.published = append(b.published, event)
	}
	b.mu.Unlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("failed to process event", "type", eventType, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ClearPublished clears the list of published events. This is useful for testing.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

// Published returns a copy of the events emitted since recording was turned on.
func (b *MemoryEventBus) Published() []common.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]common.Event(nil), b.published...)
}

// Ensure MemoryEventBus implements the Bus interface.
var _ eventbus.Bus = (*MemoryEventBus)(nil)
