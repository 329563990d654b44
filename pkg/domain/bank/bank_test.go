package bank_test

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/amirasaad/banksystem/infra/eventbus"
	"github.com/amirasaad/banksystem/pkg/domain/bank"
	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/domain/events"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/amirasaad/banksystem/pkg/sequence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

var (
	amrDob    = time.Date(2005, 1, 19, 0, 0, 0, 0, time.UTC)
	khaledDob = time.Date(2008, 7, 16, 0, 0, 0, 0, time.UTC)
)

func newBank(t *testing.T, opts ...bank.Option) *bank.Bank {
	t.Helper()
	opts = append([]bank.Option{
		bank.WithAccountNumbers(sequence.New(sequence.FirstAccountNumber)),
		bank.WithCustomerIDs(sequence.New(sequence.FirstCustomerID)),
	}, opts...)
	b, err := bank.New("Amr Bank", "BR001", opts...)
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	t.Parallel()

	b := newBank(t)
	assert.Equal(t, "Amr Bank", b.Name())
	assert.Equal(t, "BR001", b.BranchCode())
	assert.Empty(t, b.Customers())

	_, err := bank.New(" ", "BR001")
	require.ErrorIs(t, err, bank.ErrBlankName)
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = bank.New("Amr Bank", "")
	require.ErrorIs(t, err, bank.ErrBlankBranchCode)
}

func TestAddCustomer(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	b := newBank(t)

	amr, err := b.AddCustomer("Amr Soliman", "12345678901234", amrDob)
	require.NoError(err)
	khaled, err := b.AddCustomer("Khaled Soliman", "98765432109876", khaledDob)
	require.NoError(err)

	require.Equal(int64(1), amr.ID())
	require.Equal(int64(2), khaled.ID())

	customers := b.Customers()
	require.Len(customers, 2)
	require.Same(amr, customers[0])
	require.Same(khaled, customers[1])

	_, err = b.AddCustomer("", "1", amrDob)
	require.ErrorIs(err, common.ErrInvalidArgument)
	require.Len(b.Customers(), 2)

	got, ok := b.CustomerByID(2)
	require.True(ok)
	require.Same(khaled, got)
	_, ok = b.CustomerByID(99)
	require.False(ok)
}

func TestSearchCustomer(t *testing.T) {
	t.Parallel()
	b := newBank(t)
	amr, err := b.AddCustomer("Amr Soliman", "12345678901234", amrDob)
	require.NoError(t, err)
	khaled, err := b.AddCustomer("Khaled Soliman", "98765432109876", khaledDob)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		query string
		want  []int64
	}{
		{"name prefix", "Amr", []int64{amr.ID()}},
		{"case insensitive", "kHaLeD", []int64{khaled.ID()}},
		{"shared surname keeps order", "soliman", []int64{amr.ID(), khaled.ID()}},
		{"national id substring", "8765", []int64{khaled.ID()}},
		{"no match", "Mona", nil},
		{"whitespace is part of the query", "n ", nil},
		{"blank", "  ", nil},
		{"empty", "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			found := b.SearchCustomer(tc.query)
			require.NotNil(t, found)
			var ids []int64
			for _, c := range found {
				ids = append(ids, c.ID())
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestRemoveCustomer(t *testing.T) {
	t.Parallel()
	b := newBank(t)
	amr, err := b.AddCustomer("Amr Soliman", "1", amrDob)
	require.NoError(t, err)
	khaled, err := b.AddCustomer("Khaled Soliman", "2", khaledDob)
	require.NoError(t, err)

	acc, err := b.NewCurrentAccount(amr, money.Must("50"), money.Must("100"))
	require.NoError(t, err)

	assert.False(t, b.RemoveCustomer(404), "unknown id")
	assert.False(t, b.RemoveCustomer(amr.ID()), "customer holds funds")
	assert.Len(t, b.Customers(), 2)

	ok, err := acc.Withdraw(money.Must("50"))
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, b.RemoveCustomer(amr.ID()))
	customers := b.Customers()
	require.Len(t, customers, 1)
	assert.Same(t, khaled, customers[0])
	assert.False(t, b.RemoveCustomer(amr.ID()), "already removed")

	_, found := b.FindAccount(acc.Number())
	assert.False(t, found)
}

func TestRemoveCustomer_RacingDeposit(t *testing.T) {
	t.Parallel()
	b := newBank(t)

	for range 50 {
		c, err := b.AddCustomer("Amr Soliman", "1", amrDob)
		require.NoError(t, err)
		acc, err := b.NewCurrentAccount(c, money.Zero(), money.Must("100"))
		require.NoError(t, err)

		var removed bool
		var g errgroup.Group
		g.Go(func() error { return acc.Deposit(money.Must("10")) })
		g.Go(func() error {
			removed = b.RemoveCustomer(c.ID())
			return nil
		})
		require.NoError(t, g.Wait())

		_, listed := b.CustomerByID(c.ID())
		assert.NotEqual(t, removed, listed)
		assert.Equal(t, "10.00", acc.Balance().String())
		if listed {
			assert.False(t, b.RemoveCustomer(c.ID()), "funds arrived before the check")
		}
	}
}

func TestAccountFactories(t *testing.T) {
	t.Parallel()
	b := newBank(t)
	amr, err := b.AddCustomer("Amr Soliman", "1", amrDob)
	require.NoError(t, err)
	khaled, err := b.AddCustomer("Khaled Soliman", "2", khaledDob)
	require.NoError(t, err)

	sa1, err := b.NewSavingsAccount(amr, money.Must("10000"), decimal.NewFromInt(6))
	require.NoError(t, err)
	ca1, err := b.NewCurrentAccount(amr, money.Must("2000"), money.Must("1500"))
	require.NoError(t, err)
	sa2, err := b.NewSavingsAccount(khaled, money.Must("5000"), decimal.NewFromInt(5))
	require.NoError(t, err)

	assert.Equal(t, []int64{1000, 1001, 1002}, []int64{sa1.Number(), ca1.Number(), sa2.Number()})
	assert.Len(t, amr.Accounts(), 2)
	assert.Equal(t, "12000.00", amr.TotalBalance().String())

	found, ok := b.FindAccount(1002)
	require.True(t, ok)
	assert.Same(t, sa2, found)
	_, ok = b.FindAccount(999)
	assert.False(t, ok)

	_, err = b.NewSavingsAccount(amr, money.Must("1"), decimal.NewFromInt(-1))
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	_, err = b.NewCurrentAccount(nil, money.Zero(), money.Zero())
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.Len(t, amr.Accounts(), 2)

	next, err := b.NewCurrentAccount(khaled, money.Zero(), money.Zero())
	require.NoError(t, err)
	assert.Equal(t, int64(1003), next.Number(), "failed opens do not consume numbers")
}

func TestScenario(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	b := newBank(t)

	amr, err := b.AddCustomer("Amr Soliman", "12345678901234", amrDob)
	require.NoError(err)
	khaled, err := b.AddCustomer("Khaled Soliman", "98765432109876", khaledDob)
	require.NoError(err)

	sa1, err := b.NewSavingsAccount(amr, money.Must("10000"), decimal.NewFromInt(6))
	require.NoError(err)
	ca1, err := b.NewCurrentAccount(amr, money.Must("2000"), money.Must("1500"))
	require.NoError(err)
	sa2, err := b.NewSavingsAccount(khaled, money.Must("5000"), decimal.NewFromInt(5))
	require.NoError(err)

	require.Equal("50.00", sa1.MonthlyInterest().String())

	require.NoError(sa1.Deposit(money.Must("500")))
	ok, err := ca1.Withdraw(money.Must("2500"))
	require.NoError(err)
	require.True(ok)
	ok, err = sa1.TransferTo(sa2, money.Must("1000"))
	require.NoError(err)
	require.True(ok)

	require.Equal("9500.00", sa1.Balance().String())
	require.Equal("-500.00", ca1.Balance().String())
	require.Equal("6000.00", sa2.Balance().String())
	require.Equal("9000.00", amr.TotalBalance().String())

	found := b.SearchCustomer("Amr")
	require.Len(found, 1)
	require.Same(amr, found[0])
}

func TestBank_EmitsCustomerEvents(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewWithMemory(slog.Default()).RecordPublished()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := newBank(t, bank.WithEventBus(bus), bank.WithClock(func() time.Time { return at }))

	c, err := b.AddCustomer("Amr Soliman", "1", amrDob)
	require.NoError(t, err)
	acc, err := b.NewSavingsAccount(c, money.Zero(), decimal.NewFromInt(1))
	require.NoError(t, err)
	require.True(t, b.RemoveCustomer(c.ID()))

	published := bus.Published()
	require.Len(t, published, 3)

	added, ok := published[0].(events.CustomerAddedEvent)
	require.True(t, ok)
	assert.Equal(t, c.ID(), added.CustomerID)
	assert.Equal(t, at, added.Timestamp)

	opened, ok := published[1].(events.AccountOpenedEvent)
	require.True(t, ok)
	assert.Equal(t, acc.Number(), opened.AccountNumber)
	assert.Equal(t, "Savings", opened.Kind)
	assert.Equal(t, at, acc.OpenedAt())

	assert.Equal(t, events.EventTypeCustomerRemoved.String(), published[2].Type())
}

func TestBanksShareDefaultSequences(t *testing.T) {
	b1, err := bank.New("First", "BR1")
	require.NoError(t, err)
	b2, err := bank.New("Second", "BR2")
	require.NoError(t, err)

	c1, err := b1.AddCustomer("A", "1", amrDob)
	require.NoError(t, err)
	c2, err := b2.AddCustomer("B", "2", amrDob)
	require.NoError(t, err)
	assert.Greater(t, c2.ID(), c1.ID())

	a1, err := b1.NewSavingsAccount(c1, money.Zero(), decimal.Zero)
	require.NoError(t, err)
	a2, err := b2.NewCurrentAccount(c2, money.Zero(), money.Zero())
	require.NoError(t, err)
	assert.Greater(t, a2.Number(), a1.Number())
	assert.GreaterOrEqual(t, a1.Number(), sequence.FirstAccountNumber)
}
