// Package render turns invoices into their outbound representations: the
// HTML body of the invoice e-mail and the fixed-width plain-text document
// offered for download.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/avinashh10x/invoiceGen/internal/entity"
	"github.com/avinashh10x/invoiceGen/pkg/config"
)

var emailTmpl = template.Must(template.New("invoice-email").Parse(emailTemplate))

type emailItem struct {
	Description string
	Quantity    string
	Price       string
	Total       string
}

type emailView struct {
	Number      string
	Status      string
	InvoiceDate string
	DueDate     string
	PaidDate    string
	ClientName  string
	Company     string
	Email       string
	Phone       string
	Items       []emailItem
	Subtotal    string
	TaxRate     string
	TaxAmount   string
	TotalAmount string
	Notes       string
}

// InvoiceEmail renders the HTML body for the invoice e-mail.
func InvoiceEmail(inv entity.Invoice, client entity.Client) (string, error) {
	view := emailView{
		Number:      inv.Number,
		Status:      strings.ToUpper(inv.Status.String()),
		InvoiceDate: inv.CreatedAt.Format("Jan 2, 2006"),
		DueDate:     inv.DueDate.Format("Jan 2, 2006"),
		ClientName:  client.Name,
		Company:     client.Company,
		Email:       client.Email,
		Phone:       client.Phone,
		Subtotal:    inv.Currency.Format(inv.Subtotal),
		TaxAmount:   inv.Currency.Format(inv.TaxAmount),
		TotalAmount: inv.Currency.Format(inv.TotalAmount),
		Notes:       inv.Notes,
	}

	if inv.PaidDate != nil {
		view.PaidDate = inv.PaidDate.Format("Jan 2, 2006")
	}

	if !inv.TaxRate.IsZero() {
		view.TaxRate = inv.TaxRate.String()
	}

	for _, item := range inv.Items {
		view.Items = append(view.Items, emailItem{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			Price:       inv.Currency.Format(item.Price),
			Total:       inv.Currency.Format(item.Total),
		})
	}

	var buf bytes.Buffer

	err := emailTmpl.Execute(&buf, view)
	if err != nil {
		return "", fmt.Errorf("execute invoice email template: %w", err)
	}

	return buf.String(), nil
}

const docWidth = 80

// InvoiceDocument renders the invoice as a fixed-width plain-text byte
// buffer suitable for download. Not a real PDF.
func InvoiceDocument(inv entity.Invoice, client entity.Client, company config.Company) []byte {
	var b strings.Builder

	rule := strings.Repeat("=", docWidth)

	center := func(s string) {
		pad := (docWidth - len([]rune(s))) / 2
		if pad < 0 {
			pad = 0
		}

		b.WriteString(strings.Repeat(" ", pad) + s + "\n")
	}

	b.WriteString(rule + "\n")
	center(strings.ToUpper(company.Name))
	center(company.Address)
	center("Email: " + company.Email)
	center("Phone: " + company.Phone)
	b.WriteString(rule + "\n\n")
	center("INVOICE")
	b.WriteString("\n")

	fmt.Fprintf(&b, "Invoice Number: %s\n", inv.Number)
	fmt.Fprintf(&b, "Invoice Date: %s\n", inv.CreatedAt.Format("Mon Jan 2 2006"))
	fmt.Fprintf(&b, "Due Date: %s\n", inv.DueDate.Format("Mon Jan 2 2006"))
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(inv.Status.String()))
	fmt.Fprintf(&b, "Currency: %s (%s)\n", inv.Currency, inv.Currency.Symbol())

	b.WriteString("\nBILL TO:\n")
	b.WriteString(client.Name + "\n")

	for _, line := range []string{client.Company, client.Email, client.Phone} {
		if line != "" {
			b.WriteString(line + "\n")
		}
	}

	if addr := client.Address.String(); addr != "" {
		b.WriteString(addr + "\n")
	}

	b.WriteString("\nITEMS:\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-35s %-8s %-15s %-15s\n", "DESCRIPTION", "QTY", "PRICE", "TOTAL")
	b.WriteString(rule + "\n")

	for _, item := range inv.Items {
		fmt.Fprintf(&b, "%-35s %-8s %-15s %-15s\n",
			item.Description,
			item.Quantity.String(),
			inv.Currency.Format(item.Price),
			inv.Currency.Format(item.Total),
		)
	}

	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Subtotal: %s\n", inv.Currency.Format(inv.Subtotal))
	fmt.Fprintf(&b, "Tax (%s%%): %s\n", inv.TaxRate, inv.Currency.Format(inv.TaxAmount))
	fmt.Fprintf(&b, "TOTAL: %s\n", inv.Currency.Format(inv.TotalAmount))

	if inv.Status == entity.InvoiceStatusPaid {
		paidDate := "N/A"
		if inv.PaidDate != nil {
			paidDate = inv.PaidDate.Format("Mon Jan 2 2006")
		}

		fmt.Fprintf(&b, "\nPaid Date: %s\n", paidDate)
	}

	if inv.Notes != "" {
		fmt.Fprintf(&b, "\nNotes:\n%s\n", inv.Notes)
	}

	b.WriteString("\n" + rule + "\n")
	center("Thank you for your business!")
	b.WriteString(rule + "\n")

	return []byte(b.String())
}

// EmailSubject is the subject line of the invoice e-mail.
func EmailSubject(inv entity.Invoice, company config.Company) string {
	return fmt.Sprintf("Invoice %s from %s", inv.Number, company.Name)
}
