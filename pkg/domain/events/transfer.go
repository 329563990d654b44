package events

import (
	"time"

	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/google/uuid"
)

// TransferCompletedEvent is emitted after both legs of a transfer have been
// applied and all four log entries exist.
type TransferCompletedEvent struct {
	ID        uuid.UUID
	From      int64
	To        int64
	Amount    money.Money
	Timestamp time.Time
}

// TransferDeclinedEvent is emitted when the source account refuses the withdrawal leg.
// Neither account was changed.
type TransferDeclinedEvent struct {
	ID        uuid.UUID
	From      int64
	To        int64
	Amount    money.Money
	Timestamp time.Time
}

func (e TransferCompletedEvent) Type() string { return EventTypeTransferCompleted.String() }
func (e TransferDeclinedEvent) Type() string  { return EventTypeTransferDeclined.String() }
