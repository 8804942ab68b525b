package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

func TestCurrency_Format(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("1234.5")

	for _, tt := range []struct {
		currency entity.Currency
		want     string
	}{
		{entity.CurrencyUSD, "$1234.50"},
		{entity.CurrencyEUR, "€1234.50"},
		{entity.CurrencyGBP, "£1234.50"},
		{entity.CurrencyCAD, "C$1234.50"},
		{entity.CurrencyAUD, "A$1234.50"},
		{entity.CurrencyRUB, "1234.50 ₽"},
	} {
		t.Run(tt.currency.String(), func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, tt.currency.Format(amount))
		})
	}
}

func TestCurrency_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, entity.CurrencyUSD.Validate())
	require.ErrorIs(t, entity.Currency("BTC").Validate(), entity.ErrInvalidArgument)
}
