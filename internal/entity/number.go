package entity

import (
	"fmt"
	"time"
)

// InvoiceSeqMax is the largest monthly sequence that still fits the
// fixed-width numeric suffix. Numbers within one month stay
// lexicographically sortable only while the suffix keeps its width,
// so overflow is an explicit error rather than a silent fifth digit.
const InvoiceSeqMax = 9999

// FormatInvoiceNumber builds an invoice number of the form
// {prefix}{YYYY}{MM}{NNNN}, e.g. INV2026080042.
func FormatInvoiceNumber(prefix string, date time.Time, seq int64) (string, error) {
	if seq < 1 || seq > InvoiceSeqMax {
		return "", fmt.Errorf("%w: sequence %d for %s%d%02d is out of range [1, %d]",
			ErrSequenceOverflow, seq, prefix, date.Year(), int(date.Month()), InvoiceSeqMax)
	}

	return fmt.Sprintf("%s%d%02d%04d", prefix, date.Year(), int(date.Month()), seq), nil
}
