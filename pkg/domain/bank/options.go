package bank

import (
	"log/slog"
	"time"

	"github.com/amirasaad/banksystem/pkg/eventbus"
	"github.com/amirasaad/banksystem/pkg/sequence"
)

// Option configures a Bank.
type Option func(*Bank)

// WithAccountNumbers sets the generator for account numbers.
func WithAccountNumbers(numbers sequence.Generator) Option {
	return func(b *Bank) {
		if numbers != nil {
			b.accountNumbers = numbers
		}
	}
}

// WithCustomerIDs sets the generator for customer ids.
func WithCustomerIDs(ids sequence.Generator) Option {
	return func(b *Bank) {
		if ids != nil {
			b.customerIDs = ids
		}
	}
}

// WithEventBus sets the bus receiving bank and account events.
func WithEventBus(bus eventbus.Bus) Option {
	return func(b *Bank) { b.bus = bus }
}

// WithClock overrides the clock handed to accounts and events.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bank) {
		if logger != nil {
			b.logger = logger
		}
	}
}
