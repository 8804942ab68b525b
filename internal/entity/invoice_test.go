package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

func TestCalculateTotals(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name          string
		items         []entity.InvoiceItem
		taxRate       string
		wantSubtotal  string
		wantTaxAmount string
		wantTotal     string
	}{
		{
			name: "single item no tax",
			items: []entity.InvoiceItem{
				{Quantity: decimal.RequireFromString("2"), Price: decimal.RequireFromString("100")},
			},
			taxRate:       "0",
			wantSubtotal:  "200",
			wantTaxAmount: "0",
			wantTotal:     "200",
		},
		{
			name: "fractional prices round from raw sums",
			items: []entity.InvoiceItem{
				{Quantity: decimal.RequireFromString("2"), Price: decimal.RequireFromString("50.005")},
			},
			taxRate:       "10",
			wantSubtotal:  "100.01",
			wantTaxAmount: "10",
			wantTotal:     "110.01",
		},
		{
			name: "multiple items with tax",
			items: []entity.InvoiceItem{
				{Quantity: decimal.RequireFromString("3"), Price: decimal.RequireFromString("19.99")},
				{Quantity: decimal.RequireFromString("1.5"), Price: decimal.RequireFromString("40")},
			},
			taxRate:       "20",
			wantSubtotal:  "119.97",
			wantTaxAmount: "23.99",
			wantTotal:     "143.96",
		},
		{
			name:          "no items",
			items:         nil,
			taxRate:       "20",
			wantSubtotal:  "0",
			wantTaxAmount: "0",
			wantTotal:     "0",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := entity.CalculateTotals(tt.items, decimal.RequireFromString(tt.taxRate))

			require.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			require.True(t, got.TaxAmount.Equal(decimal.RequireFromString(tt.wantTaxAmount)),
				"taxAmount = %s, want %s", got.TaxAmount, tt.wantTaxAmount)
			require.True(t, got.TotalAmount.Equal(decimal.RequireFromString(tt.wantTotal)),
				"totalAmount = %s, want %s", got.TotalAmount, tt.wantTotal)
		})
	}
}

func TestCalculateTotals_ItemTotalsNotRounded(t *testing.T) {
	t.Parallel()

	got := entity.CalculateTotals([]entity.InvoiceItem{
		{Quantity: decimal.RequireFromString("3"), Price: decimal.RequireFromString("0.333")},
	}, decimal.Zero)

	require.True(t, got.Items[0].Total.Equal(decimal.RequireFromString("0.999")),
		"item total = %s, want 0.999", got.Items[0].Total)
	require.True(t, got.Subtotal.Equal(decimal.RequireFromString("1")),
		"subtotal = %s, want 1", got.Subtotal)
}

func TestRecalculateTax(t *testing.T) {
	t.Parallel()

	taxAmount, totalAmount := entity.RecalculateTax(
		decimal.RequireFromString("100.01"),
		decimal.RequireFromString("10"),
	)

	require.True(t, taxAmount.Equal(decimal.RequireFromString("10")),
		"taxAmount = %s, want 10", taxAmount)
	require.True(t, totalAmount.Equal(decimal.RequireFromString("110.01")),
		"totalAmount = %s, want 110.01", totalAmount)
}

func TestInvoice_ApplyStatus(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("entering paid sets paid date to now", func(t *testing.T) {
		t.Parallel()

		inv := entity.Invoice{Status: entity.InvoiceStatusSent}
		inv.ApplyStatus(entity.InvoiceStatusPaid, nil, now)

		require.Equal(t, entity.InvoiceStatusPaid, inv.Status)
		require.NotNil(t, inv.PaidDate)
		require.Equal(t, now, *inv.PaidDate)
	})

	t.Run("entering paid keeps supplied paid date", func(t *testing.T) {
		t.Parallel()

		paidAt := now.AddDate(0, 0, -3)

		inv := entity.Invoice{Status: entity.InvoiceStatusSent}
		inv.ApplyStatus(entity.InvoiceStatusPaid, &paidAt, now)

		require.NotNil(t, inv.PaidDate)
		require.Equal(t, paidAt, *inv.PaidDate)
	})

	t.Run("leaving paid clears paid date", func(t *testing.T) {
		t.Parallel()

		paidAt := now

		inv := entity.Invoice{Status: entity.InvoiceStatusPaid, PaidDate: &paidAt}
		inv.ApplyStatus(entity.InvoiceStatusSent, nil, now)

		require.Equal(t, entity.InvoiceStatusSent, inv.Status)
		require.Nil(t, inv.PaidDate)
	})

	t.Run("non paid transition leaves paid date nil", func(t *testing.T) {
		t.Parallel()

		inv := entity.Invoice{Status: entity.InvoiceStatusDraft}
		inv.ApplyStatus(entity.InvoiceStatusCancelled, nil, now)

		require.Nil(t, inv.PaidDate)
	})
}

func TestInvoice_Locked(t *testing.T) {
	t.Parallel()

	require.True(t, entity.Invoice{Status: entity.InvoiceStatusPaid}.Locked())
	require.False(t, entity.Invoice{Status: entity.InvoiceStatusOverdue}.Locked())
	require.False(t, entity.Invoice{Status: entity.InvoiceStatusDraft}.Locked())
}

func TestInvoiceStatus_Validate(t *testing.T) {
	t.Parallel()

	for _, status := range []entity.InvoiceStatus{
		entity.InvoiceStatusDraft,
		entity.InvoiceStatusSent,
		entity.InvoiceStatusPaid,
		entity.InvoiceStatusOverdue,
		entity.InvoiceStatusCancelled,
	} {
		require.NoError(t, status.Validate())
	}

	err := entity.InvoiceStatus("pending").Validate()
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}
