package main

import (
	"time"

	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/bank"
	"github.com/amirasaad/banksystem/pkg/domain/customer"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/amirasaad/banksystem/pkg/report"
	"github.com/shopspring/decimal"
)

type scenario struct {
	amr, khaled   *customer.Customer
	sa1, ca1, sa2 *account.Account
}

func (s *scenario) accounts() []*account.Account {
	return []*account.Account{s.sa1, s.ca1, s.sa2}
}

// runScenario registers two customers with three accounts, moves money
// between them and prints the resulting reports.
func runScenario(b *bank.Bank, p *report.Printer) (*scenario, error) {
	s := &scenario{}
	var err error

	if s.amr, err = b.AddCustomer("Amr Soliman", "12345678901234", time.Date(2005, 1, 19, 0, 0, 0, 0, time.UTC)); err != nil {
		return nil, err
	}
	if s.khaled, err = b.AddCustomer("Khaled Soliman", "98765432109876", time.Date(2008, 7, 16, 0, 0, 0, 0, time.UTC)); err != nil {
		return nil, err
	}
	if s.sa1, err = b.NewSavingsAccount(s.amr, money.NewFromInt(10000), decimal.NewFromInt(6)); err != nil {
		return nil, err
	}
	if s.ca1, err = b.NewCurrentAccount(s.amr, money.NewFromInt(2000), money.NewFromInt(1500)); err != nil {
		return nil, err
	}
	if s.sa2, err = b.NewSavingsAccount(s.khaled, money.NewFromInt(5000), decimal.NewFromInt(5)); err != nil {
		return nil, err
	}

	if err := s.sa1.Deposit(money.NewFromInt(500)); err != nil {
		return nil, err
	}
	ok, err := s.ca1.Withdraw(money.NewFromInt(2500))
	if err != nil {
		return nil, err
	}
	if !ok {
		p.Declined("Withdrawal of 2500.00 from #%d declined", s.ca1.Number())
	}
	ok, err = s.sa1.TransferTo(s.sa2, money.NewFromInt(1000))
	if err != nil {
		return nil, err
	}
	if !ok {
		p.Declined("Transfer of 1000.00 from #%d to #%d declined", s.sa1.Number(), s.sa2.Number())
	}

	p.Bank(b)
	p.Blank()
	p.Interest(s.amr.Accounts())
	p.Blank()
	p.History(s.sa1)
	p.Blank()
	p.History(s.ca1)
	p.Blank()
	p.Search("Amr", b.SearchCustomer("Amr"))
	return s, nil
}
