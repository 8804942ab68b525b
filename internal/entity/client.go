package entity

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a Address) String() string {
	parts := make([]string, 0, 5)

	for _, part := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}

type Client struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Company   string
	Phone     string
	Address   Address
	IsActive  bool
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientInput is a request to create or replace a client.
type ClientInput struct {
	Name     string
	Email    string
	Company  string
	Phone    string
	Address  Address
	Notes    string
	IsActive *bool
}

type ClientFilter struct {
	Search   string
	IsActive *bool
	Page     uint64
	Limit    uint64
}

// ClientInvoiceStats summarize invoices referencing one client.
type ClientInvoiceStats struct {
	TotalInvoices int
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
}
