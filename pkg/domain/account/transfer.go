package account

import (
	"fmt"

	"github.com/amirasaad/banksystem/pkg/domain/events"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/google/uuid"
)

// Transfer moves amount from src to dst as a single unit.
//
// Both accounts are locked, lower account number first, for the whole
// operation. Distinct accounts that happen to share a number may transfer
// between each other. If the source policy refuses the withdrawal, Transfer returns
// false and neither account changes. Otherwise the source records Withdraw and
// TransferOut, the target records Deposit and TransferIn, and Transfer returns true.
func Transfer(src, dst *Account, amount money.Money) (bool, error) {
	if src == nil || dst == nil {
		return false, ErrNilAccount
	}
	if src == dst {
		return false, ErrSameAccount
	}
	if !amount.IsPositive() {
		return false, ErrAmountMustBePositive
	}

	unlock := lockAll([]*Account{src, dst})

	_, ok := src.withdraw(amount)
	if ok {
		dst.deposit(amount)
		src.append(TransactionTransferOut, amount, fmt.Sprintf("To #%d", dst.number))
		dst.append(TransactionTransferIn, amount, fmt.Sprintf("From #%d", src.number))
	}

	unlock()

	if !ok {
		src.emit(events.TransferDeclinedEvent{
			ID:        uuid.New(),
			From:      src.number,
			To:        dst.number,
			Amount:    amount,
			Timestamp: src.now(),
		})
		return false, nil
	}
	src.emit(events.TransferCompletedEvent{
		ID:        uuid.New(),
		From:      src.number,
		To:        dst.number,
		Amount:    amount,
		Timestamp: src.now(),
	})
	return true, nil
}
