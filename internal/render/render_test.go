package render_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avinashh10x/invoiceGen/internal/entity"
	"github.com/avinashh10x/invoiceGen/internal/render"
	"github.com/avinashh10x/invoiceGen/pkg/config"
)

func testInvoice() entity.Invoice {
	return entity.Invoice{
		ID:       uuid.Must(uuid.NewV4()),
		Number:   "INV2026030001",
		ClientID: uuid.Must(uuid.NewV4()),
		Items: []entity.InvoiceItem{
			{
				Description: "Consulting",
				Quantity:    decimal.RequireFromString("2"),
				Price:       decimal.RequireFromString("50.005"),
				Total:       decimal.RequireFromString("100.01"),
			},
		},
		Subtotal:    decimal.RequireFromString("100.01"),
		TaxRate:     decimal.RequireFromString("10"),
		TaxAmount:   decimal.RequireFromString("10"),
		TotalAmount: decimal.RequireFromString("110.01"),
		Status:      entity.InvoiceStatusSent,
		Currency:    entity.CurrencyUSD,
		DueDate:     time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
	}
}

func testClient() entity.Client {
	return entity.Client{
		ID:      uuid.Must(uuid.NewV4()),
		Name:    "Jane Smith",
		Company: "Acme Corp",
		Email:   "billing@acme.com",
		Phone:   "+1 555 0100",
		Address: entity.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			Country: "USA",
		},
	}
}

func TestInvoiceEmail(t *testing.T) {
	t.Parallel()

	body, err := render.InvoiceEmail(testInvoice(), testClient())
	require.NoError(t, err)

	require.Contains(t, body, "INV2026030001")
	require.Contains(t, body, "Jane Smith")
	require.Contains(t, body, "Acme Corp")
	require.Contains(t, body, "Consulting")
	require.Contains(t, body, "$110.01")
	require.Contains(t, body, "Apr 15, 2026")
	require.Contains(t, body, "SENT")
}

func TestInvoiceEmail_SkipsTaxLineWhenZero(t *testing.T) {
	t.Parallel()

	inv := testInvoice()
	inv.TaxRate = decimal.Zero
	inv.TaxAmount = decimal.Zero

	body, err := render.InvoiceEmail(inv, testClient())
	require.NoError(t, err)
	require.NotContains(t, body, "Tax (")
}

func TestInvoiceEmail_EscapesHTML(t *testing.T) {
	t.Parallel()

	inv := testInvoice()
	inv.Notes = "<script>alert(1)</script>"

	body, err := render.InvoiceEmail(inv, testClient())
	require.NoError(t, err)
	require.NotContains(t, body, "<script>")
}

func TestInvoiceDocument(t *testing.T) {
	t.Parallel()

	company := config.Company{
		Name:    "My Studio",
		Address: "2 Side St, Springfield",
		Email:   "contact@mystudio.com",
		Phone:   "+1 555 0200",
	}

	doc := string(render.InvoiceDocument(testInvoice(), testClient(), company))

	require.Contains(t, doc, "MY STUDIO")
	require.Contains(t, doc, "INVOICE")
	require.Contains(t, doc, "Invoice Number: INV2026030001")
	require.Contains(t, doc, "BILL TO:")
	require.Contains(t, doc, "Jane Smith")
	require.Contains(t, doc, "1 Main St, Springfield, USA")
	require.Contains(t, doc, "Consulting")
	require.Contains(t, doc, "Subtotal: $100.01")
	require.Contains(t, doc, "Tax (10%): $10.00")
	require.Contains(t, doc, "TOTAL: $110.01")
	require.NotContains(t, doc, "Paid Date")
}

func TestInvoiceDocument_Paid(t *testing.T) {
	t.Parallel()

	inv := testInvoice()
	inv.Status = entity.InvoiceStatusPaid
	paidAt := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	inv.PaidDate = &paidAt

	doc := string(render.InvoiceDocument(inv, testClient(), config.Company{Name: "My Studio"}))

	require.Contains(t, doc, "Paid Date: Fri Mar 20 2026")
}

func TestEmailSubject(t *testing.T) {
	t.Parallel()

	got := render.EmailSubject(testInvoice(), config.Company{Name: "My Studio"})
	require.Equal(t, "Invoice INV2026030001 from My Studio", got)
}
