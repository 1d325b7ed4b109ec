package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation      = errors.New("invalid expense")
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrTransport marks failures talking to a remote expense API.
	ErrTransport = errors.New("expense api unavailable")
)

// Draft is an expense record without its identifier: the body of a create or
// a full replace.
type Draft struct {
	EmployeeName    string          `json:"employeeName"`
	WorkDate        WorkDate        `json:"workDate"`
	Destination     string          `json:"destination"`
	Category        string          `json:"category"`
	AmountWithdrawn decimal.Decimal `json:"amountWithdrawn"`
	Justification   decimal.Decimal `json:"justification"`
}

// ExpenseRecord is a single advance: what an employee withdrew for a trip and
// how much of it has been justified with receipts.
type ExpenseRecord struct {
	ID              ExpenseID       `json:"id"`
	EmployeeName    string          `json:"employeeName"`
	WorkDate        WorkDate        `json:"workDate"`
	Destination     string          `json:"destination"`
	Category        string          `json:"category"`
	AmountWithdrawn decimal.Decimal `json:"amountWithdrawn"`
	Justification   decimal.Decimal `json:"justification"`
}

// Balance is the unjustified part of the withdrawal.
func (r ExpenseRecord) Balance() decimal.Decimal {
	return r.AmountWithdrawn.Sub(r.Justification)
}

// Draft strips the identifier.
func (r ExpenseRecord) Draft() Draft {
	return Draft{
		EmployeeName:    r.EmployeeName,
		WorkDate:        r.WorkDate,
		Destination:     r.Destination,
		Category:        r.Category,
		AmountWithdrawn: r.AmountWithdrawn,
		Justification:   r.Justification,
	}
}

// Equal compares field by field; decimals are compared by value.
func (r ExpenseRecord) Equal(o ExpenseRecord) bool {
	return r.ID == o.ID &&
		r.EmployeeName == o.EmployeeName &&
		r.WorkDate.Equal(o.WorkDate.Time) &&
		r.Destination == o.Destination &&
		r.Category == o.Category &&
		r.AmountWithdrawn.Equal(o.AmountWithdrawn) &&
		r.Justification.Equal(o.Justification)
}

// WithID attaches an identifier to the draft.
func (d Draft) WithID(id ExpenseID) ExpenseRecord {
	return ExpenseRecord{
		ID:              id,
		EmployeeName:    d.EmployeeName,
		WorkDate:        d.WorkDate,
		Destination:     d.Destination,
		Category:        d.Category,
		AmountWithdrawn: d.AmountWithdrawn,
		Justification:   d.Justification,
	}
}

// Normalize trims surrounding whitespace from the text fields so that
// "Awa" and "Awa " group under the same employee.
func (d Draft) Normalize() Draft {
	d.EmployeeName = strings.TrimSpace(d.EmployeeName)
	d.Destination = strings.TrimSpace(d.Destination)
	d.Category = strings.TrimSpace(d.Category)
	return d
}

// Validate enforces the record invariants. The justified amount may never
// exceed the withdrawn amount.
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.EmployeeName) == "":
		return fmt.Errorf("%w: employee name is required", ErrValidation)
	case strings.TrimSpace(d.Category) == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case d.WorkDate.IsZero():
		return fmt.Errorf("%w: work date is required", ErrValidation)
	case d.AmountWithdrawn.IsNegative():
		return fmt.Errorf("%w: amount withdrawn must not be negative", ErrValidation)
	case d.Justification.IsNegative():
		return fmt.Errorf("%w: justification must not be negative", ErrValidation)
	case d.Justification.GreaterThan(d.AmountWithdrawn):
		return fmt.Errorf("%w: justification %s exceeds amount withdrawn %s",
			ErrValidation, d.Justification, d.AmountWithdrawn)
	}
	return nil
}

// Prepare normalizes and validates a draft in one step. Stores call it before
// touching persistent state.
func Prepare(d Draft) (Draft, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}
