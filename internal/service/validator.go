package service

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

var emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	maxQuantity  = decimal.New(999_999, 0)
	maxUnitPrice = decimal.NewFromFloat(999_999.99)
	maxTaxRate   = decimal.New(100, 0)
)

const (
	minNameLen    = 2
	maxNameLen    = 100
	maxCompanyLen = 100
	maxDescLen    = 200
	maxNotesLen   = 500

	minPasswordLen = 6
	maxPasswordLen = 100
)

func ValidateInvoiceInput(in entity.InvoiceInput) error {
	if in.ClientID.IsNil() {
		return fmt.Errorf("%w: clientId is required", entity.ErrInvalidArgument)
	}

	err := in.Status.Validate()
	if err != nil {
		return err
	}

	err = in.Currency.Validate()
	if err != nil {
		return err
	}

	if in.DueDate.IsZero() {
		return fmt.Errorf("%w: dueDate is required", entity.ErrInvalidArgument)
	}

	err = validateItems(in.Items)
	if err != nil {
		return err
	}

	err = validateTaxRate(in.TaxRate)
	if err != nil {
		return err
	}

	return validateNotes(in.Notes)
}

func ValidateInvoiceUpdate(upd entity.InvoiceUpdate) error {
	if upd.Status != nil {
		err := upd.Status.Validate()
		if err != nil {
			return err
		}
	}

	if upd.Currency != nil {
		err := upd.Currency.Validate()
		if err != nil {
			return err
		}
	}

	if upd.Items != nil {
		err := validateItems(upd.Items)
		if err != nil {
			return err
		}
	}

	if upd.TaxRate != nil {
		err := validateTaxRate(*upd.TaxRate)
		if err != nil {
			return err
		}
	}

	if upd.DueDate != nil && upd.DueDate.IsZero() {
		return fmt.Errorf("%w: dueDate must not be empty", entity.ErrInvalidArgument)
	}

	if upd.Notes != nil {
		return validateNotes(*upd.Notes)
	}

	return nil
}

func validateItems(items []entity.InvoiceItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", entity.ErrInvalidArgument)
	}

	for n, item := range items {
		if item.Description == "" || len(item.Description) > maxDescLen {
			return fmt.Errorf("%w: item %d description must be 1-%d characters",
				entity.ErrInvalidArgument, n+1, maxDescLen)
		}

		if !item.Quantity.IsPositive() || item.Quantity.GreaterThan(maxQuantity) {
			return fmt.Errorf("%w: item %d quantity must be positive and at most %s",
				entity.ErrInvalidArgument, n+1, maxQuantity)
		}

		if item.Price.IsNegative() || item.Price.GreaterThan(maxUnitPrice) {
			return fmt.Errorf("%w: item %d price must be between 0 and %s",
				entity.ErrInvalidArgument, n+1, maxUnitPrice)
		}
	}

	return nil
}

func validateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxTaxRate) {
		return fmt.Errorf("%w: taxRate must be between 0 and 100", entity.ErrInvalidArgument)
	}

	return nil
}

func validateNotes(notes string) error {
	if len(notes) > maxNotesLen {
		return fmt.Errorf("%w: notes must be at most %d characters", entity.ErrInvalidArgument, maxNotesLen)
	}

	return nil
}

func ValidateClientInput(in entity.ClientInput) error {
	if len(in.Name) < minNameLen || len(in.Name) > maxNameLen {
		return fmt.Errorf("%w: name must be %d-%d characters", entity.ErrInvalidArgument, minNameLen, maxNameLen)
	}

	if len(in.Company) > maxCompanyLen {
		return fmt.Errorf("%w: company must be at most %d characters", entity.ErrInvalidArgument, maxCompanyLen)
	}

	// Email is optional for clients; only its format is checked when given.
	if in.Email != "" && !emailRx.MatchString(in.Email) {
		return fmt.Errorf("%w: invalid email address", entity.ErrInvalidArgument)
	}

	return validateNotes(in.Notes)
}

func ValidateAdminInput(name, email, password string) error {
	err := ValidateAdminProfile(name, email)
	if err != nil {
		return err
	}

	return validatePassword(password)
}

func ValidateAdminProfile(name, email string) error {
	if len(name) < minNameLen || len(name) > maxNameLen {
		return fmt.Errorf("%w: name must be %d-%d characters", entity.ErrInvalidArgument, minNameLen, maxNameLen)
	}

	if !emailRx.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", entity.ErrInvalidArgument)
	}

	return nil
}

// validatePassword requires at least one lower case letter, one upper case
// letter and one digit.
func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be %d-%d characters",
			entity.ErrInvalidArgument, minPasswordLen, maxPasswordLen)
	}

	var hasLower, hasUpper, hasDigit bool

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit {
		return fmt.Errorf("%w: password must contain a lower case letter, an upper case letter and a digit",
			entity.ErrInvalidArgument)
	}

	return nil
}
