package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrEmailTaken       = errors.New("email already in use")
	ErrAlreadyPaid      = errors.New("already marked as paid")
	ErrInvoicePaid      = errors.New("invoice is paid")
	ErrSequenceOverflow = errors.New("invoice sequence overflow")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
)

// ClientHasInvoicesError blocks client deletion while invoices still
// reference the client. Carries the count so callers can report it.
type ClientHasInvoicesError struct {
	InvoiceCount int
}

func (e *ClientHasInvoicesError) Error() string {
	return fmt.Sprintf("client is referenced by %d invoices", e.InvoiceCount)
}
