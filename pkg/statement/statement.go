// Package statement exports account transaction logs as an ordered stream of
// RFC 8785 canonical JSON records, one per line, keyed by account number.
package statement

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/google/uuid"
	"github.com/gowebpki/jcs"
)

// ErrInvalidRecord is returned when a statement line cannot be decoded.
var ErrInvalidRecord = errors.New("invalid statement record")

// Record is one transaction as it appears in an exported statement.
type Record struct {
	Account   int64                   `json:"account"`
	Seq       int                     `json:"seq"`
	ID        uuid.UUID               `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Kind      account.TransactionKind `json:"kind"`
	Amount    money.Money             `json:"amount"`
	Note      string                  `json:"note,omitempty"`
}

// Transaction converts the record back into a domain transaction.
func (r Record) Transaction() account.Transaction {
	return account.NewTransactionFromData(r.ID, r.Timestamp, r.Kind, r.Amount, r.Note)
}

// Canonical returns the RFC 8785 encoding of v.
func Canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(raw)
}

// Write exports the logs of accounts, ordered by account number and then by
// position in each log. Nil accounts are skipped.
func Write(w io.Writer, accounts ...*account.Account) error {
	sorted := slices.DeleteFunc(slices.Clone(accounts), func(a *account.Account) bool { return a == nil })
	slices.SortFunc(sorted, func(a, b *account.Account) int {
		switch {
		case a.Number() < b.Number():
			return -1
		case a.Number() > b.Number():
			return 1
		}
		return 0
	})

	bw := bufio.NewWriter(w)
	for _, acc := range sorted {
		for seq, tx := range acc.Transactions() {
			line, err := Canonical(Record{
				Account:   acc.Number(),
				Seq:       seq,
				ID:        tx.ID,
				Timestamp: tx.Timestamp.UTC(),
				Kind:      tx.Kind,
				Amount:    tx.Amount,
				Note:      tx.Note,
			})
			if err != nil {
				return fmt.Errorf("account %d entry %d: %w", acc.Number(), seq, err)
			}
			if _, err := bw.Write(line); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadRecords parses a statement stream. Blank lines are ignored.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, lineNo, err)
		}
		if !rec.Kind.IsValid() {
			return nil, fmt.Errorf("%w: line %d: unknown kind %q", ErrInvalidRecord, lineNo, rec.Kind)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Balances nets the records of each account in the stream.
func Balances(records []Record) map[int64]money.Money {
	byAccount := make(map[int64][]account.Transaction)
	for _, rec := range records {
		byAccount[rec.Account] = append(byAccount[rec.Account], rec.Transaction())
	}
	out := make(map[int64]money.Money, len(byAccount))
	for number, txs := range byAccount {
		out[number] = account.Net(txs)
	}
	return out
}
