package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  EntryKind = "income"
	Expense EntryKind = "expense"
)

type (
	// EntryKind is the direction of a ledger entry. Amounts are always
	// non-negative; the kind carries the sign.
	EntryKind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// LedgerEntry is one financial event attributed to a calendar date.
	// Date is the date the event belongs to, CreatedAt the record creation
	// time; the two are independent.
	LedgerEntry struct {
		ID          string
		Kind        EntryKind
		Amount      Money
		Category    string
		SubCategory string
		Description string
		Date        Date
		Currency    string
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidKind      = errors.New("invalid entry kind")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrLongDescription  = errors.New("description too long (max 200 characters)")
	ErrEmptyCurrency    = errors.New("empty currency code")
	ErrMixedCurrency    = errors.New("mixed currencies in aggregation")
)

func (k EntryKind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e LedgerEntry) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrLongDescription
	}
	if strings.TrimSpace(e.Currency) == "" {
		return ErrEmptyCurrency
	}
	return nil
}
