package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/google/uuid"
)

// TransactionKind encodes the direction of a ledger event. Amounts are always
// non-negative; the kind carries the sign.
type TransactionKind string

// Transaction kinds.
const (
	TransactionDeposit     TransactionKind = "Deposit"
	TransactionWithdraw    TransactionKind = "Withdraw"
	TransactionTransferOut TransactionKind = "TransferOut"
	TransactionTransferIn  TransactionKind = "TransferIn"
)

// IsCredit reports whether the kind increases the balance it is recorded against.
func (k TransactionKind) IsCredit() bool {
	return k == TransactionDeposit || k == TransactionTransferIn
}

// MovesFunds reports whether the kind changes a balance on its own.
// TransferOut and TransferIn annotate the Withdraw and Deposit recorded
// alongside them and carry no balance effect of their own.
func (k TransactionKind) MovesFunds() bool {
	return k == TransactionDeposit || k == TransactionWithdraw
}

// IsValid reports whether k is one of the four known kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionDeposit, TransactionWithdraw, TransactionTransferOut, TransactionTransferIn:
		return true
	}
	return false
}

// Transaction is an immutable record of one ledger event.
// Values are copied out of the account log, so mutating a returned Transaction
// never affects the log.
type Transaction struct {
	ID        uuid.UUID
	Timestamp time.Time
	Kind      TransactionKind
	Amount    money.Money
	Note      string
}

func newTransaction(kind TransactionKind, amount money.Money, note string, at time.Time) Transaction {
	return Transaction{
		ID:        uuid.New(),
		Timestamp: at,
		Kind:      kind,
		Amount:    amount,
		Note:      note,
	}
}

// NewTransactionFromData creates a Transaction from raw data (used when reading
// an exported statement or building test fixtures). It never touches an account log.
func NewTransactionFromData(
	id uuid.UUID,
	timestamp time.Time,
	kind TransactionKind,
	amount money.Money,
	note string,
) Transaction {
	return Transaction{
		ID:        id,
		Timestamp: timestamp,
		Kind:      kind,
		Amount:    amount,
		Note:      note,
	}
}

// String renders the transaction as one history line.
func (t Transaction) String() string {
	return fmt.Sprintf("%s | %-12s | Amount: %10s | %s",
		t.Timestamp.Format(time.DateTime), t.Kind, t.Amount, t.Note)
}

// Net returns the signed effect of the transactions on a balance:
// deposits minus withdrawals. Transfer annotations are skipped.
func Net(txs []Transaction) money.Money {
	total := money.Zero()
	for _, tx := range txs {
		if !tx.Kind.MovesFunds() {
			continue
		}
		if tx.Kind.IsCredit() {
			total = total.Add(tx.Amount)
		} else {
			total = total.Sub(tx.Amount)
		}
	}
	return total
}
