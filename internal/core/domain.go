package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date with no time-of-day semantics. All comparisons
	// are done in UTC on the day boundary.
	Date struct {
		time.Time
	}

	// Transaction is a one-time income or expense entry. Amount is always a
	// non-negative magnitude; direction is carried by IsIncome, never by the
	// sign of Amount.
	Transaction struct {
		ID          string   `json:"id"`
		Amount      float64  `json:"amount"`
		Description string   `json:"description"`
		IsIncome    bool     `json:"isIncome"`
		Date        Date     `json:"date"`
		Category    Category `json:"category,omitempty"`
	}

	// RecurringTransaction is an open-ended monthly entry. It is active from
	// StartDate onward indefinitely and contributes its full fixed amount
	// every active month, with no pro-rating for partial periods.
	RecurringTransaction struct {
		Transaction
		StartDate Date `json:"startDate"`
	}

	// Balances holds the two account scalars. They travel as decimal strings
	// at the persistence boundary and are parsed for computation.
	Balances struct {
		Bank string `json:"bankBalance"`
		Debt string `json:"debtBalance"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyID          = errors.New("empty id")
	ErrInvalidDate      = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Valid reports whether the date carries a usable value. Records with
// invalid dates are excluded from every aggregate rather than rejected.
func (d Date) Valid() bool {
	return !d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or the empty string for the
// zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes "YYYY-MM-DD" or a full RFC 3339 timestamp. Anything
// unparsable decodes as the zero date instead of failing: historical records
// with broken dates must not abort loading the rest of the collection.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*d = ParseDate(s)
	return nil
}

// ParseDate parses a calendar date, tolerating RFC 3339 timestamps from
// older exports. Returns the zero date when the input is unparsable.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return Date{}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t.UTC())
	}
	return Date{}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if !t.Date.Valid() {
		return ErrInvalidDate
	}
	return nil
}

func (rt RecurringTransaction) Validate() error {
	if err := rt.Transaction.Validate(); err != nil {
		return err
	}
	if !rt.StartDate.Valid() {
		return ErrInvalidDate
	}
	return nil
}

// NetWorth parses both balance strings and returns bank minus debt.
// Unparsable balances count as zero.
func (b Balances) NetWorth() float64 {
	return b.BankAmount() - b.DebtAmount()
}

// BankAmount returns the parsed bank balance, zero when unparsable.
func (b Balances) BankAmount() float64 {
	v, err := ParseDecimal(b.Bank)
	if err != nil {
		return 0
	}
	return v
}

// DebtAmount returns the parsed debt balance, zero when unparsable.
func (b Balances) DebtAmount() float64 {
	v, err := ParseDecimal(b.Debt)
	if err != nil {
		return 0
	}
	return v
}
