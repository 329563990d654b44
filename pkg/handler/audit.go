// Package handler holds event bus handlers shared by the bank's entry points.
package handler

import (
	"context"
	"log/slog"

	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/domain/events"
	"github.com/amirasaad/banksystem/pkg/eventbus"
)

// EventID returns the identifier carried by a known event, or "" otherwise.
func EventID(e common.Event) string {
	switch ev := e.(type) {
	case events.AccountOpenedEvent:
		return ev.ID.String()
	case events.DepositedEvent:
		return ev.ID.String()
	case events.WithdrawnEvent:
		return ev.ID.String()
	case events.WithdrawalDeclinedEvent:
		return ev.ID.String()
	case events.TransferCompletedEvent:
		return ev.ID.String()
	case events.TransferDeclinedEvent:
		return ev.ID.String()
	case events.CustomerAddedEvent:
		return ev.ID.String()
	case events.CustomerRemovedEvent:
		return ev.ID.String()
	}
	return ""
}

// Audit returns a handler writing one structured record per event.
// Declined operations are logged at warn level.
func Audit(logger *slog.Logger) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "audit")

	return func(ctx context.Context, e common.Event) error {
		level := slog.LevelInfo
		var attrs []any

		switch ev := e.(type) {
		case events.AccountOpenedEvent:
			attrs = []any{
				"account", ev.AccountNumber,
				"kind", ev.Kind,
				"initial_balance", ev.InitialBalance.String(),
			}
		case events.DepositedEvent:
			attrs = []any{"account", ev.AccountNumber, "amount", ev.Amount.String(), "balance", ev.Balance.String()}
		case events.WithdrawnEvent:
			attrs = []any{"account", ev.AccountNumber, "amount", ev.Amount.String(), "balance", ev.Balance.String()}
		case events.WithdrawalDeclinedEvent:
			level = slog.LevelWarn
			attrs = []any{"account", ev.AccountNumber, "amount", ev.Amount.String(), "balance", ev.Balance.String()}
		case events.TransferCompletedEvent:
			attrs = []any{"from", ev.From, "to", ev.To, "amount", ev.Amount.String()}
		case events.TransferDeclinedEvent:
			level = slog.LevelWarn
			attrs = []any{"from", ev.From, "to", ev.To, "amount", ev.Amount.String()}
		case events.CustomerAddedEvent:
			attrs = []any{"customer_id", ev.CustomerID}
		case events.CustomerRemovedEvent:
			attrs = []any{"customer_id", ev.CustomerID}
		default:
			logger.DebugContext(ctx, "unhandled event", "event_type", e.Type())
			return nil
		}

		attrs = append(attrs, "event_id", EventID(e))
		logger.Log(ctx, level, e.Type(), attrs...)
		return nil
	}
}

// RegisterAll registers h for every known event type.
func RegisterAll(bus eventbus.Bus, h eventbus.HandlerFunc) {
	for _, et := range events.All() {
		bus.Register(et.String(), h)
	}
}
