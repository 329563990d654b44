package account_test

import (
	"log/slog"
	"testing"

	"github.com/amirasaad/banksystem/infra/eventbus"
	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/domain/events"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/amirasaad/banksystem/pkg/sequence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestTransfer_Success(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	seq := sequence.New(1000)

	a := savings(t, seq, "10500", 6)
	b := savings(t, seq, "5000", 5)

	ok, err := a.TransferTo(b, money.Must("1000"))
	require.NoError(err)
	require.True(ok)

	require.Equal("9500.00", a.Balance().String())
	require.Equal("6000.00", b.Balance().String())

	aTxs := a.Transactions()
	require.Len(aTxs, 3)
	assert.Equal(t, account.TransactionWithdraw, aTxs[1].Kind)
	assert.Equal(t, account.TransactionTransferOut, aTxs[2].Kind)
	assert.Equal(t, "To #1001", aTxs[2].Note)
	assert.Equal(t, "1000.00", aTxs[2].Amount.String())

	bTxs := b.Transactions()
	require.Len(bTxs, 3)
	assert.Equal(t, account.TransactionDeposit, bTxs[1].Kind)
	assert.Equal(t, account.TransactionTransferIn, bTxs[2].Kind)
	assert.Equal(t, "From #1000", bTxs[2].Note)
}

func TestTransfer_DeclinedLeavesBothUnchanged(t *testing.T) {
	t.Parallel()
	seq := sequence.New(1000)

	a := current(t, seq, "100", "50")
	b := savings(t, seq, "20", 1)

	ok, err := account.Transfer(a, b, money.Must("150.01"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "100.00", a.Balance().String())
	assert.Equal(t, "20.00", b.Balance().String())
	assert.Len(t, a.Transactions(), 1)
	assert.Len(t, b.Transactions(), 1)

	// the overdraft still permits the full limit
	ok, err = account.Transfer(a, b, money.Must("150"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "-50.00", a.Balance().String())
	assert.Equal(t, "170.00", b.Balance().String())
}

func TestTransfer_ToLowerNumber(t *testing.T) {
	t.Parallel()
	seq := sequence.New(1000)
	low := savings(t, seq, "0", 1)
	high := current(t, seq, "300", "0")

	ok, err := high.TransferTo(low, money.Must("300"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, high.Balance().IsZero())
	assert.Equal(t, "300.00", low.Balance().String())
}

func TestTransfer_DistinctAccountsSharingANumber(t *testing.T) {
	t.Parallel()
	a := current(t, sequence.New(1000), "1000", "500")
	b := current(t, sequence.New(1000), "1000", "500")
	require.Equal(t, a.Number(), b.Number())

	ok, err := account.Transfer(a, b, money.Must("100"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "900.00", a.Balance().String())
	assert.Equal(t, "1100.00", b.Balance().String())

	var g errgroup.Group
	for range 100 {
		g.Go(func() error {
			_, err := account.Transfer(a, b, money.Must("3"))
			return err
		})
		g.Go(func() error {
			_, err := account.Transfer(b, a, money.Must("2"))
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, "800.00", a.Balance().String())
	assert.Equal(t, "1200.00", b.Balance().String())
}

func TestTransfer_InvalidArguments(t *testing.T) {
	t.Parallel()
	seq := sequence.New(1000)
	a := savings(t, seq, "100", 1)
	b := savings(t, seq, "100", 1)

	testCases := []struct {
		name    string
		src     *account.Account
		dst     *account.Account
		amount  money.Money
		wantErr error
	}{
		{"nil target", a, nil, money.Must("1"), account.ErrNilAccount},
		{"nil source", nil, b, money.Must("1"), account.ErrNilAccount},
		{"same account", a, a, money.Must("1"), account.ErrSameAccount},
		{"zero amount", a, b, money.Zero(), account.ErrAmountMustBePositive},
		{"negative amount", a, b, money.Must("-5"), account.ErrAmountMustBePositive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := account.Transfer(tc.src, tc.dst, tc.amount)
			require.ErrorIs(t, err, tc.wantErr)
			require.ErrorIs(t, err, common.ErrInvalidArgument)
			assert.False(t, ok)
		})
	}
	assert.Equal(t, "100.00", a.Balance().String())
	assert.Equal(t, "100.00", b.Balance().String())
}

func TestTransfer_EmitsOnlyTransferEvent(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewWithMemory(slog.Default()).RecordPublished()
	seq := sequence.New(1000)

	a, err := account.New(seq).WithBalance(money.Must("100")).WithEventBus(bus).Savings(decimal.Zero)
	require.NoError(t, err)
	b, err := account.New(seq).WithEventBus(bus).Current(money.Zero())
	require.NoError(t, err)
	bus.ClearPublished()

	ok, err := a.TransferTo(b, money.Must("40"))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = a.TransferTo(b, money.Must("61"))
	require.NoError(t, err)
	require.False(t, ok)

	published := bus.Published()
	require.Len(t, published, 2)

	completed, isCompleted := published[0].(events.TransferCompletedEvent)
	require.True(t, isCompleted)
	assert.Equal(t, int64(1000), completed.From)
	assert.Equal(t, int64(1001), completed.To)
	assert.Equal(t, "40.00", completed.Amount.String())

	declined, isDeclined := published[1].(events.TransferDeclinedEvent)
	require.True(t, isDeclined)
	assert.Equal(t, "61.00", declined.Amount.String())
}

func TestTransfer_ConcurrentOpposingDirections(t *testing.T) {
	t.Parallel()
	seq := sequence.New(1000)
	a := current(t, seq, "1000", "500")
	b := current(t, seq, "1000", "500")

	const rounds = 200
	var g errgroup.Group
	for range rounds {
		g.Go(func() error {
			_, err := account.Transfer(a, b, money.Must("3"))
			return err
		})
		g.Go(func() error {
			_, err := account.Transfer(b, a, money.Must("2"))
			return err
		})
		g.Go(func() error {
			a.Balance()
			b.Transactions()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	total := a.Balance().Add(b.Balance())
	assert.Equal(t, "2000.00", total.String(), "transfers conserve the combined balance")
	assert.Equal(t, "800.00", a.Balance().String())
	assert.Equal(t, "1200.00", b.Balance().String())
	assert.True(t, a.Balance().Equal(account.Net(a.Transactions())))
	assert.True(t, b.Balance().Equal(account.Net(b.Transactions())))
}
