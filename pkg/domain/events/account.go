package events

import (
	"time"

	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/google/uuid"
)

// AccountOpenedEvent is emitted once an account has been constructed and numbered.
type AccountOpenedEvent struct {
	ID             uuid.UUID
	AccountNumber  int64
	Kind           string
	InitialBalance money.Money
	Timestamp      time.Time
}

// DepositedEvent is emitted after a deposit has been applied.
type DepositedEvent struct {
	ID            uuid.UUID
	AccountNumber int64
	Amount        money.Money
	Balance       money.Money // balance after the deposit
	Timestamp     time.Time
}

// WithdrawnEvent is emitted after a withdrawal has been applied.
type WithdrawnEvent struct {
	ID            uuid.UUID
	AccountNumber int64
	Amount        money.Money
	Balance       money.Money // balance after the withdrawal
	Timestamp     time.Time
}

// WithdrawalDeclinedEvent is emitted when the account policy refuses a withdrawal.
type WithdrawalDeclinedEvent struct {
	ID            uuid.UUID
	AccountNumber int64
	Amount        money.Money
	Balance       money.Money // unchanged balance
	Timestamp     time.Time
}

func (e AccountOpenedEvent) Type() string      { return EventTypeAccountOpened.String() }
func (e DepositedEvent) Type() string          { return EventTypeDeposited.String() }
func (e WithdrawnEvent) Type() string          { return EventTypeWithdrawn.String() }
func (e WithdrawalDeclinedEvent) Type() string { return EventTypeWithdrawalDeclined.String() }
