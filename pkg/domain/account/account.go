package account

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/domain/events"
	"github.com/amirasaad/banksystem/pkg/eventbus"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/amirasaad/banksystem/pkg/sequence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeInitialBalance is returned when an account is opened with a balance below zero.
	ErrNegativeInitialBalance = fmt.Errorf("%w: initial balance cannot be negative", common.ErrInvalidArgument)

	// ErrNegativeInterestRate is returned when a savings interest rate is below zero.
	ErrNegativeInterestRate = fmt.Errorf("%w: interest rate cannot be negative", common.ErrInvalidArgument)

	// ErrNegativeOverdraftLimit is returned when a current account overdraft limit is below zero.
	ErrNegativeOverdraftLimit = fmt.Errorf("%w: overdraft limit cannot be negative", common.ErrInvalidArgument)

	// ErrOverdraftLimitBelowBalance is returned when lowering an overdraft limit
	// would leave the current balance outside the new limit.
	ErrOverdraftLimitBelowBalance = fmt.Errorf("%w: overdraft limit does not cover current balance", common.ErrInvalidArgument)

	// ErrAmountMustBePositive is returned when a deposit, withdrawal or transfer amount is not positive.
	ErrAmountMustBePositive = fmt.Errorf("%w: amount must be positive", common.ErrInvalidArgument)

	// ErrNilAccount is returned when a required account reference is absent.
	ErrNilAccount = fmt.Errorf("%w: account is required", common.ErrInvalidArgument)

	// ErrSameAccount is returned when a transfer names the same account on both sides.
	ErrSameAccount = fmt.Errorf("%w: cannot transfer to the same account", common.ErrInvalidArgument)

	// ErrWrongKind is returned when a variant-specific setter is called on the other variant.
	ErrWrongKind = fmt.Errorf("%w: operation not supported for this account kind", common.ErrInvalidArgument)
)

// Kind is the closed set of account variants.
type Kind int

const (
	// KindSavings accounts never go below zero and earn monthly interest.
	KindSavings Kind = iota + 1
	// KindCurrent accounts may go overdrawn down to their overdraft limit and earn nothing.
	KindCurrent
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSavings:
		return "Savings"
	case KindCurrent:
		return "Current"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// monthsPerYear * 100, the divisor that turns a yearly percentage into a monthly fraction.
var monthlyRateDivisor = decimal.NewFromInt(1200)

// Account owns a balance and an append-only transaction log.
//
// Invariants:
//   - A Savings balance is never negative.
//   - A Current balance is never below -OverdraftLimit.
//   - The balance only changes through deposits and withdrawals, each of which appends to the log.
//   - All operations are safe for concurrent use, enforced by a mutex.
type Account struct {
	mu   sync.Mutex
	rank uint64

	number   int64
	kind     Kind
	openedAt time.Time
	balance  money.Money
	log      []Transaction

	interestRate   decimal.Decimal // percentage, Savings only
	overdraftLimit money.Money     // Current only

	now func() time.Time
	bus eventbus.Bus
}

// Details is a consistent snapshot of an account's metadata and balance.
type Details struct {
	Number         int64
	Kind           Kind
	OpenedAt       time.Time
	Balance        money.Money
	InterestRate   decimal.Decimal
	OverdraftLimit money.Money
}

// Builder provides a fluent API for constructing Account instances.
// Validation happens before a number is drawn, so a failed build never consumes one.
type Builder struct {
	numbers sequence.Generator
	balance money.Money
	now     func() time.Time
	bus     eventbus.Bus
}

// New creates a Builder drawing account numbers from numbers.
// A nil generator falls back to the process-wide sequence.AccountNumbers.
func New(numbers sequence.Generator) *Builder {
	if numbers == nil {
		numbers = sequence.AccountNumbers
	}
	return &Builder{
		numbers: numbers,
		now:     time.Now,
	}
}

// WithBalance sets the initial balance. A positive balance is recorded as an
// "Initial balance" deposit in the log.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithClock overrides the clock used for the opening date and transaction timestamps.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// WithEventBus sets the bus that receives the account's domain events.
func (b *Builder) WithEventBus(bus eventbus.Bus) *Builder {
	b.bus = bus
	return b
}

// Savings builds a savings account with the given yearly interest rate in percent.
func (b *Builder) Savings(interestRate decimal.Decimal) (*Account, error) {
	if interestRate.IsNegative() {
		return nil, ErrNegativeInterestRate
	}
	return b.build(KindSavings, func(a *Account) { a.interestRate = interestRate })
}

// Current builds a current account with the given overdraft limit.
func (b *Builder) Current(overdraftLimit money.Money) (*Account, error) {
	if overdraftLimit.IsNegative() {
		return nil, ErrNegativeOverdraftLimit
	}
	return b.build(KindCurrent, func(a *Account) { a.overdraftLimit = overdraftLimit })
}

func (b *Builder) build(kind Kind, variant func(*Account)) (*Account, error) {
	if b.balance.IsNegative() {
		return nil, ErrNegativeInitialBalance
	}

	a := &Account{
		rank:     lockRanks.Add(1),
		number:   b.numbers.Next(),
		kind:     kind,
		openedAt: b.now(),
		balance:  b.balance,
		now:      b.now,
		bus:      b.bus,
	}
	variant(a)
	if b.balance.IsPositive() {
		a.append(TransactionDeposit, b.balance, "Initial balance")
	}

	a.emit(events.AccountOpenedEvent{
		ID:             uuid.New(),
		AccountNumber:  a.number,
		Kind:           kind.String(),
		InitialBalance: b.balance,
		Timestamp:      a.openedAt,
	})
	return a, nil
}

// NewSavings opens a savings account. See Builder for details.
func NewSavings(numbers sequence.Generator, initialBalance money.Money, interestRate decimal.Decimal) (*Account, error) {
	return New(numbers).WithBalance(initialBalance).Savings(interestRate)
}

// NewCurrent opens a current account. See Builder for details.
func NewCurrent(numbers sequence.Generator, initialBalance, overdraftLimit money.Money) (*Account, error) {
	return New(numbers).WithBalance(initialBalance).Current(overdraftLimit)
}

// Number returns the account number.
func (a *Account) Number() int64 { return a.number }

// Kind returns the account variant.
func (a *Account) Kind() Kind { return a.kind }

// OpenedAt returns the creation instant.
func (a *Account) OpenedAt() time.Time { return a.openedAt }

// Balance returns the current balance.
func (a *Account) Balance() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// InterestRate returns the yearly interest rate in percent. Always zero for current accounts.
func (a *Account) InterestRate() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interestRate
}

// OverdraftLimit returns the overdraft limit. Always zero for savings accounts.
func (a *Account) OverdraftLimit() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overdraftLimit
}

// Details returns the account metadata and balance read under a single lock.
func (a *Account) Details() Details {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Details{
		Number:         a.number,
		Kind:           a.kind,
		OpenedAt:       a.openedAt,
		Balance:        a.balance,
		InterestRate:   a.interestRate,
		OverdraftLimit: a.overdraftLimit,
	}
}

// Transactions returns a copy of the log in chronological order.
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.log))
	copy(out, a.log)
	return out
}

// SetInterestRate replaces the yearly interest rate of a savings account.
func (a *Account) SetInterestRate(rate decimal.Decimal) error {
	if a.kind != KindSavings {
		return ErrWrongKind
	}
	if rate.IsNegative() {
		return ErrNegativeInterestRate
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interestRate = rate
	return nil
}

// SetOverdraftLimit replaces the overdraft limit of a current account.
// The new limit must still cover the current balance.
func (a *Account) SetOverdraftLimit(limit money.Money) error {
	if a.kind != KindCurrent {
		return ErrWrongKind
	}
	if limit.IsNegative() {
		return ErrNegativeOverdraftLimit
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance.LessThan(limit.Neg()) {
		return ErrOverdraftLimitBelowBalance
	}
	a.overdraftLimit = limit
	return nil
}

// Deposit adds amount to the balance and records a Deposit transaction.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}

	a.mu.Lock()
	tx := a.deposit(amount)
	balance := a.balance
	a.mu.Unlock()

	a.emit(events.DepositedEvent{
		ID:            tx.ID,
		AccountNumber: a.number,
		Amount:        amount,
		Balance:       balance,
		Timestamp:     tx.Timestamp,
	})
	return nil
}

// Withdraw removes amount from the balance if the account policy allows it.
// A refused withdrawal returns false with no state change; it is not an error.
func (a *Account) Withdraw(amount money.Money) (bool, error) {
	if !amount.IsPositive() {
		return false, ErrAmountMustBePositive
	}

	a.mu.Lock()
	tx, ok := a.withdraw(amount)
	balance := a.balance
	a.mu.Unlock()

	if !ok {
		a.emit(events.WithdrawalDeclinedEvent{
			ID:            uuid.New(),
			AccountNumber: a.number,
			Amount:        amount,
			Balance:       balance,
			Timestamp:     a.now(),
		})
		return false, nil
	}
	a.emit(events.WithdrawnEvent{
		ID:            tx.ID,
		AccountNumber: a.number,
		Amount:        amount,
		Balance:       balance,
		Timestamp:     tx.Timestamp,
	})
	return true, nil
}

// CanWithdraw reports whether the account policy would allow withdrawing amount
// from the current balance. It has no side effects.
func (a *Account) CanWithdraw(amount money.Money) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canWithdraw(amount)
}

// MonthlyInterest returns the interest one month would earn at the current
// balance, rounded to the smallest currency unit. Current accounts earn nothing.
func (a *Account) MonthlyInterest() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.kind {
	case KindSavings:
		return money.Round(a.balance.Decimal().Mul(a.interestRate).Div(monthlyRateDivisor))
	default:
		return money.Zero()
	}
}

// TransferTo moves amount from a to target. See Transfer.
func (a *Account) TransferTo(target *Account, amount money.Money) (bool, error) {
	return Transfer(a, target, amount)
}

// canWithdraw is the variant policy. Caller must hold a.mu.
func (a *Account) canWithdraw(amount money.Money) bool {
	switch a.kind {
	case KindSavings:
		return a.balance.GreaterThanOrEqual(amount)
	case KindCurrent:
		return a.balance.Sub(amount).GreaterThanOrEqual(a.overdraftLimit.Neg())
	default:
		return false
	}
}

// deposit applies a validated deposit. Caller must hold a.mu.
func (a *Account) deposit(amount money.Money) Transaction {
	a.balance = a.balance.Add(amount)
	return a.append(TransactionDeposit, amount, "")
}

// withdraw applies a validated withdrawal if the policy allows it. Caller must hold a.mu.
func (a *Account) withdraw(amount money.Money) (Transaction, bool) {
	if !a.canWithdraw(amount) {
		return Transaction{}, false
	}
	a.balance = a.balance.Sub(amount)
	return a.append(TransactionWithdraw, amount, ""), true
}

// append records a transaction. Caller must hold a.mu.
func (a *Account) append(kind TransactionKind, amount money.Money, note string) Transaction {
	tx := newTransaction(kind, amount, note, a.now())
	a.log = append(a.log, tx)
	return tx
}

// emit publishes an event. Must be called without holding a.mu so handlers may query the account.
func (a *Account) emit(event common.Event) {
	if a.bus == nil {
		return
	}
	if err := a.bus.Emit(context.Background(), event); err != nil {
		slog.Warn("account event handler failed",
			"account", a.number,
			"event", event.Type(),
			"error", err,
		)
	}
}
