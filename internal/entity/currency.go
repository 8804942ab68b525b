package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyRUB Currency = "RUB"
)

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Validate() error {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD, CurrencyAUD, CurrencyRUB:
		return nil
	default:
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidArgument, c)
	}
}

func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	case CurrencyCAD:
		return "C$"
	case CurrencyAUD:
		return "A$"
	case CurrencyRUB:
		return "₽"
	default:
		return string(c)
	}
}

// Format renders an amount with the currency symbol. RUB puts the symbol
// after the amount, everything else before it.
func (c Currency) Format(amount decimal.Decimal) string {
	if c == CurrencyRUB {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), c.Symbol())
	}

	return c.Symbol() + amount.StringFixed(2)
}
