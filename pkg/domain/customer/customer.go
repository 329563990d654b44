package customer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/amirasaad/banksystem/pkg/sequence"
)

var (
	// ErrBlankName is returned when a customer name is empty or whitespace.
	ErrBlankName = fmt.Errorf("%w: full name cannot be blank", common.ErrInvalidArgument)
	// ErrBlankNationalID is returned when a national id is empty or whitespace.
	ErrBlankNationalID = fmt.Errorf("%w: national id cannot be blank", common.ErrInvalidArgument)
	// ErrNilAccount is returned when AddAccount is called without an account.
	ErrNilAccount = fmt.Errorf("%w: account is required", common.ErrInvalidArgument)
	// ErrNilCustomer is returned when an operation requires a customer and none is given.
	ErrNilCustomer = fmt.Errorf("%w: customer is required", common.ErrInvalidArgument)
)

// Customer is a bank customer owning zero or more accounts.
type Customer struct {
	mu sync.RWMutex

	id          int64
	fullName    string
	nationalID  string
	dateOfBirth time.Time
	accounts    []*account.Account
}

// Details is a consistent snapshot of a customer's identity.
type Details struct {
	ID          int64
	FullName    string
	NationalID  string
	DateOfBirth time.Time
}

// New creates a Customer with an id drawn from ids.
// A nil generator falls back to sequence.CustomerIDs. Validation happens
// before the id is drawn.
func New(ids sequence.Generator, fullName, nationalID string, dateOfBirth time.Time) (*Customer, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, ErrBlankName
	}
	if strings.TrimSpace(nationalID) == "" {
		return nil, ErrBlankNationalID
	}
	if ids == nil {
		ids = sequence.CustomerIDs
	}
	return &Customer{
		id:          ids.Next(),
		fullName:    fullName,
		nationalID:  nationalID,
		dateOfBirth: dateOfBirth,
	}, nil
}

func (c *Customer) ID() int64 { return c.id }

func (c *Customer) NationalID() string { return c.nationalID }

func (c *Customer) FullName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fullName
}

func (c *Customer) DateOfBirth() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dateOfBirth
}

// Details returns the customer identity read under a single lock.
func (c *Customer) Details() Details {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Details{
		ID:          c.id,
		FullName:    c.fullName,
		NationalID:  c.nationalID,
		DateOfBirth: c.dateOfBirth,
	}
}

// Accounts returns the owned accounts in the order they were added.
// The slice is a copy; the accounts themselves are shared.
func (c *Customer) Accounts() []*account.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*account.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// AddAccount appends acc to the customer's accounts.
func (c *Customer) AddAccount(acc *account.Account) error {
	if acc == nil {
		return ErrNilAccount
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, acc)
	return nil
}

// CanBeRemoved reports whether every owned account has a balance of exactly zero.
// An overdrawn current account blocks removal just like a positive balance.
func (c *Customer) CanBeRemoved() bool {
	for _, acc := range c.Accounts() {
		if !acc.Balance().IsZero() {
			return false
		}
	}
	return true
}

// WhileRemovable runs fn if every owned account has a zero balance, holding
// the customer and all of its accounts locked until fn returns. It reports
// whether fn ran.
func (c *Customer) WhileRemovable(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return account.WhileEmpty(c.accounts, fn)
}

// TotalBalance sums the balances of all owned accounts.
func (c *Customer) TotalBalance() money.Money {
	total := money.Zero()
	for _, acc := range c.Accounts() {
		total = total.Add(acc.Balance())
	}
	return total
}

// UpdateDetails replaces the name and date of birth.
func (c *Customer) UpdateDetails(fullName string, dateOfBirth time.Time) error {
	if strings.TrimSpace(fullName) == "" {
		return ErrBlankName
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fullName = fullName
	c.dateOfBirth = dateOfBirth
	return nil
}

// Matches reports whether query occurs, ignoring case, in the full name or
// national id. A blank query matches nothing; otherwise the query is matched
// as given, surrounding whitespace included.
func (c *Customer) Matches(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	q := strings.ToLower(query)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.Contains(strings.ToLower(c.fullName), q) ||
		strings.Contains(strings.ToLower(c.nationalID), q)
}
