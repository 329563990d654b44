package eventbus

import (
	"context"

	"github.com/amirasaad/banksystem/pkg/domain/common"
)

// HandlerFunc handles a single published event.
type HandlerFunc func(ctx context.Context, event common.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Emit(ctx context.Context, event common.Event) error
	Register(eventType string, handler HandlerFunc)
}
