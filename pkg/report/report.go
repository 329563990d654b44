// Package report renders human-readable bank, customer and account reports.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/bank"
	"github.com/amirasaad/banksystem/pkg/domain/customer"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/fatih/color"
)

const (
	customerRule = "----------------------------------------"
	accountRule  = "  -------------------------"

	dateLayout = time.DateOnly
)

// Printer writes reports to an output stream.
type Printer struct {
	w        io.Writer
	heading  *color.Color
	negative *color.Color
	declined *color.Color
}

// New creates a Printer. When colorize is false no escape codes are written.
func New(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:        w,
		heading:  color.New(color.FgCyan, color.Bold),
		negative: color.New(color.FgRed),
		declined: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.heading, p.negative, p.declined} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Heading writes a section title.
func (p *Printer) Heading(format string, args ...any) {
	_, _ = p.heading.Fprintf(p.w, format, args...)
	_, _ = fmt.Fprintln(p.w)
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	_, _ = fmt.Fprintln(p.w)
}

// Bank writes every customer report, in registration order.
func (p *Printer) Bank(b *bank.Bank) {
	p.Heading("=== Bank Report: %s (%s) ===", b.Name(), b.BranchCode())
	customers := b.Customers()
	if len(customers) == 0 {
		_, _ = fmt.Fprintln(p.w, "No customers.")
		return
	}
	for _, c := range customers {
		_, _ = fmt.Fprintln(p.w, customerRule)
		p.Customer(c)
	}
}

// Customer writes the customer identity, each account and the total balance.
func (p *Printer) Customer(c *customer.Customer) {
	d := c.Details()
	_, _ = fmt.Fprintf(p.w, "Customer #%d | %s | NID: %s | DOB: %s\n",
		d.ID, d.FullName, d.NationalID, d.DateOfBirth.Format(dateLayout))

	accounts := c.Accounts()
	if len(accounts) == 0 {
		_, _ = fmt.Fprintln(p.w, "  No accounts.")
		return
	}
	for _, acc := range accounts {
		_, _ = fmt.Fprintln(p.w, accountRule)
		p.AccountDetails(acc)
	}
	_, _ = fmt.Fprintf(p.w, "  Total Balance: %s\n", p.amount(c.TotalBalance()))
}

// AccountDetails writes the account metadata and the variant-specific line.
func (p *Printer) AccountDetails(acc *account.Account) {
	d := acc.Details()
	_, _ = fmt.Fprintf(p.w, "Account Number: %d\n", d.Number)
	_, _ = fmt.Fprintf(p.w, "Opened On     : %s\n", d.OpenedAt.Format(time.DateTime))
	_, _ = fmt.Fprintf(p.w, "Balance       : %s\n", p.amount(d.Balance))
	_, _ = fmt.Fprintf(p.w, "Type          : %s\n", d.Kind)
	switch d.Kind {
	case account.KindSavings:
		_, _ = fmt.Fprintf(p.w, "Interest Rate : %s%%\n", d.InterestRate.String())
	case account.KindCurrent:
		_, _ = fmt.Fprintf(p.w, "Overdraft Lim.: %s\n", d.OverdraftLimit)
	}
}

// History writes the account's transaction log in chronological order.
func (p *Printer) History(acc *account.Account) {
	p.Heading("--- Transactions for Account #%d ---", acc.Number())
	txs := acc.Transactions()
	if len(txs) == 0 {
		_, _ = fmt.Fprintln(p.w, "No transactions.")
		return
	}
	for _, tx := range txs {
		_, _ = fmt.Fprintln(p.w, tx.String())
	}
}

// Interest writes the monthly interest each account would earn.
func (p *Printer) Interest(accounts []*account.Account) {
	p.Heading("=== Monthly Interest Calculation ===")
	for _, acc := range accounts {
		_, _ = fmt.Fprintf(p.w, "Account #%d Interest: %s\n", acc.Number(), acc.MonthlyInterest())
	}
}

// Search writes the customers matching query.
func (p *Printer) Search(query string, found []*customer.Customer) {
	p.Heading("=== Search for '%s' ===", query)
	if len(found) == 0 {
		_, _ = fmt.Fprintln(p.w, "No matches.")
		return
	}
	for _, c := range found {
		_, _ = fmt.Fprintf(p.w, "Found: %s (ID: %d)\n", c.FullName(), c.ID())
	}
}

// Declined writes a notice for an operation refused by account policy.
func (p *Printer) Declined(format string, args ...any) {
	_, _ = p.declined.Fprintf(p.w, format, args...)
	_, _ = fmt.Fprintln(p.w)
}

func (p *Printer) amount(m money.Money) string {
	if m.IsNegative() {
		return p.negative.Sprint(m.String())
	}
	return m.String()
}
