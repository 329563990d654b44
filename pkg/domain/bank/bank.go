package bank

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/domain/customer"
	"github.com/amirasaad/banksystem/pkg/domain/events"
	"github.com/amirasaad/banksystem/pkg/eventbus"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/amirasaad/banksystem/pkg/sequence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrBlankName is returned when a bank is created without a name.
	ErrBlankName = fmt.Errorf("%w: bank name cannot be blank", common.ErrInvalidArgument)
	// ErrBlankBranchCode is returned when a bank is created without a branch code.
	ErrBlankBranchCode = fmt.Errorf("%w: branch code cannot be blank", common.ErrInvalidArgument)
)

// Bank is the registry of customers for one branch.
// Customers are kept in registration order.
type Bank struct {
	mu sync.RWMutex

	name       string
	branchCode string
	customers  []*customer.Customer

	accountNumbers sequence.Generator
	customerIDs    sequence.Generator
	bus            eventbus.Bus
	now            func() time.Time
	logger         *slog.Logger
}

// New creates a Bank. Without options it draws identifiers from the
// process-wide sequences, so numbers stay unique across banks.
func New(name, branchCode string, opts ...Option) (*Bank, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}
	if strings.TrimSpace(branchCode) == "" {
		return nil, ErrBlankBranchCode
	}
	b := &Bank{
		name:           name,
		branchCode:     branchCode,
		accountNumbers: sequence.AccountNumbers,
		customerIDs:    sequence.CustomerIDs,
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("bank", name, "branch", branchCode)
	return b, nil
}

func (b *Bank) Name() string { return b.name }

func (b *Bank) BranchCode() string { return b.branchCode }

// AddCustomer creates and registers a customer.
func (b *Bank) AddCustomer(fullName, nationalID string, dateOfBirth time.Time) (*customer.Customer, error) {
	c, err := customer.New(b.customerIDs, fullName, nationalID, dateOfBirth)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.customers = append(b.customers, c)
	b.mu.Unlock()

	b.logger.Debug("customer added", "customer_id", c.ID())
	b.emit(events.CustomerAddedEvent{ID: uuid.New(), CustomerID: c.ID(), Timestamp: b.now()})
	return c, nil
}

// RemoveCustomer removes the customer with the given id if every one of
// their balances is zero. It returns false when the customer is unknown or
// still holds funds. The customer's accounts stay locked from the balance
// check until the customer is gone.
func (b *Bank) RemoveCustomer(id int64) bool {
	b.mu.Lock()
	idx := slices.IndexFunc(b.customers, func(c *customer.Customer) bool { return c.ID() == id })
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	removed := b.customers[idx].WhileRemovable(func() {
		b.customers = slices.Delete(b.customers, idx, idx+1)
	})
	b.mu.Unlock()

	if !removed {
		b.logger.Debug("customer not removable", "customer_id", id)
		return false
	}
	b.logger.Debug("customer removed", "customer_id", id)
	b.emit(events.CustomerRemovedEvent{ID: uuid.New(), CustomerID: id, Timestamp: b.now()})
	return true
}

// SearchCustomer returns customers whose name or national id contains query,
// ignoring case, in registration order. A blank query returns no customers.
func (b *Bank) SearchCustomer(query string) []*customer.Customer {
	matches := []*customer.Customer{}
	if strings.TrimSpace(query) == "" {
		return matches
	}
	for _, c := range b.Customers() {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	return matches
}

// CustomerByID returns the customer with the given id.
func (b *Bank) CustomerByID(id int64) (*customer.Customer, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, c := range b.customers {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Customers returns a copy of the registered customers.
func (b *Bank) Customers() []*customer.Customer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.customers)
}

// FindAccount looks up an account owned by any registered customer.
func (b *Bank) FindAccount(number int64) (*account.Account, bool) {
	for _, c := range b.Customers() {
		for _, acc := range c.Accounts() {
			if acc.Number() == number {
				return acc, true
			}
		}
	}
	return nil, false
}

// NewSavingsAccount opens a savings account numbered by this bank and
// attaches it to owner.
func (b *Bank) NewSavingsAccount(owner *customer.Customer, initialBalance money.Money, interestRate decimal.Decimal) (*account.Account, error) {
	if owner == nil {
		return nil, customer.ErrNilCustomer
	}
	acc, err := b.accountBuilder(initialBalance).Savings(interestRate)
	if err != nil {
		return nil, err
	}
	return acc, owner.AddAccount(acc)
}

// NewCurrentAccount opens a current account numbered by this bank and
// attaches it to owner.
func (b *Bank) NewCurrentAccount(owner *customer.Customer, initialBalance, overdraftLimit money.Money) (*account.Account, error) {
	if owner == nil {
		return nil, customer.ErrNilCustomer
	}
	acc, err := b.accountBuilder(initialBalance).Current(overdraftLimit)
	if err != nil {
		return nil, err
	}
	return acc, owner.AddAccount(acc)
}

func (b *Bank) accountBuilder(initialBalance money.Money) *account.Builder {
	return account.New(b.accountNumbers).
		WithBalance(initialBalance).
		WithClock(b.now).
		WithEventBus(b.bus)
}

func (b *Bank) emit(event common.Event) {
	if b.bus == nil {
		return
	}
	if err := b.bus.Emit(context.Background(), event); err != nil {
		b.logger.Warn("bank event handler failed", "event", event.Type(), "error", err)
	}
}
