package money_test

import (
	"fmt"
	"log"

	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/shopspring/decimal"
)

// ExampleNewFromString demonstrates parsing an exact amount.
func ExampleNewFromString() {
	m, err := money.NewFromString("100.5")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m)

	_, err = money.NewFromString("0.001")
	fmt.Println(err != nil)
	// Output:
	// 100.50
	// true
}

// ExampleMoney_Sub demonstrates that balances may go below zero.
func ExampleMoney_Sub() {
	balance := money.NewFromInt(2000)
	fmt.Println(balance.Sub(money.NewFromInt(2500)))
	// Output:
	// -500.00
}

// ExampleRound demonstrates rounding a derived monthly interest figure.
func ExampleRound() {
	balance := decimal.NewFromInt(1234)
	rate := decimal.NewFromInt(5).Div(decimal.NewFromInt(100))
	fmt.Println(money.Round(balance.Mul(rate).Div(decimal.NewFromInt(12))))
	// Output:
	// 5.14
}
