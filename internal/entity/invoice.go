package entity

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: unknown invoice status %q", ErrInvalidArgument, s)
	}
}

type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID            uuid.UUID
	Number        string
	ClientID      uuid.UUID
	Items         []InvoiceItem
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        InvoiceStatus
	Currency      Currency
	DueDate       time.Time
	PaidDate      *time.Time
	Notes         string
	EmailSent     bool
	EmailSentDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Locked reports whether the invoice rejects general edits and deletion.
// The status-update and mark-paid paths stay open even for a locked invoice.
func (i Invoice) Locked() bool {
	return i.Status == InvoiceStatusPaid
}

// ApplyStatus moves the invoice to status and keeps PaidDate consistent
// with the invariant "PaidDate is set if and only if the invoice is paid".
// When entering paid, paidDate is used if supplied, otherwise now.
func (i *Invoice) ApplyStatus(status InvoiceStatus, paidDate *time.Time, now time.Time) {
	i.Status = status

	switch {
	case status == InvoiceStatusPaid:
		if paidDate != nil {
			i.PaidDate = paidDate
		} else {
			i.PaidDate = &now
		}
	case i.PaidDate != nil:
		i.PaidDate = nil
	}
}

var oneHundred = decimal.New(100, 0)

type Totals struct {
	Items       []InvoiceItem
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// CalculateTotals computes the monetary fields of an invoice from its items
// and a tax rate percentage.
//
// Each aggregate is rounded to 2 decimal places from the raw, unrounded sums:
// item totals are never rounded, and subtotal, taxAmount and totalAmount are
// each rounded independently. Chaining already-rounded values instead drifts
// by a cent on some inputs. Rounding is half away from zero (decimal.Round).
func CalculateTotals(items []InvoiceItem, taxRate decimal.Decimal) Totals {
	out := make([]InvoiceItem, len(items))

	var subtotalRaw decimal.Decimal

	for n, item := range items {
		item.Total = item.Quantity.Mul(item.Price)
		out[n] = item

		subtotalRaw = subtotalRaw.Add(item.Total)
	}

	taxRaw := subtotalRaw.Mul(taxRate).Div(oneHundred)

	return Totals{
		Items:       out,
		Subtotal:    subtotalRaw.Round(2),
		TaxAmount:   taxRaw.Round(2),
		TotalAmount: subtotalRaw.Add(taxRaw).Round(2),
	}
}

// RecalculateTax derives taxAmount and totalAmount from an already stored
// subtotal. Used when only the tax rate changes and the item list is untouched.
func RecalculateTax(subtotal, taxRate decimal.Decimal) (taxAmount, totalAmount decimal.Decimal) {
	taxRaw := subtotal.Mul(taxRate).Div(oneHundred)

	return taxRaw.Round(2), subtotal.Add(taxRaw).Round(2)
}

// InvoiceInput is a request to create an invoice, already parsed but not
// yet validated.
type InvoiceInput struct {
	ClientID uuid.UUID
	Items    []InvoiceItem
	TaxRate  decimal.Decimal
	DueDate  time.Time
	Notes    string
	Currency Currency
	Status   InvoiceStatus
	PaidDate *time.Time
}

// InvoiceUpdate carries partial changes for an invoice. Nil fields stay as is.
type InvoiceUpdate struct {
	ClientID *uuid.UUID
	Items    []InvoiceItem
	TaxRate  *decimal.Decimal
	DueDate  *time.Time
	Notes    *string
	Currency *Currency
	Status   *InvoiceStatus
}

type InvoiceFilter struct {
	Status    *InvoiceStatus
	ClientID  *uuid.UUID
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      uint64
	Limit     uint64
}

// InvoiceStats are filter-scoped aggregate sums shown next to invoice lists.
type InvoiceStats struct {
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
}

type StatusCount struct {
	Status      InvoiceStatus
	Count       int
	TotalAmount decimal.Decimal
}

type MonthlyRevenue struct {
	Year    int
	Month   time.Month
	Revenue decimal.Decimal
}

type DashboardStats struct {
	InvoiceStats   []StatusCount
	TotalClients   int
	TotalInvoices  int
	RecentInvoices []Invoice
	MonthlyRevenue []MonthlyRevenue
}
