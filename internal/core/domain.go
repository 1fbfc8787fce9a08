package core

import (
	"errors"
	"strings"
	"time"
)

// Known categories. Advisory only: the server stores whatever label the
// client sends, these are just the values the UI offers.
const (
	CategoryGeneral       = "General"
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryUtilities     = "Utilities"
	CategoryShopping      = "Shopping"
	CategoryOther         = "Other"
)

// DefaultDescription is substituted when a client sends a blank description.
const DefaultDescription = "No description"

// Categories returns the advisory category list in display order.
func Categories() []string {
	return []string{
		CategoryGeneral,
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryShopping,
		CategoryOther,
	}
}

type (
	// Date is an instant in time, not a pure calendar date. The calendar
	// day it belongs to depends on the zone of whoever is asking.
	Date struct {
		time.Time
	}

	// Expense is the sole persisted entity: one dated monetary record.
	Expense struct {
		ID          string `json:"id"`
		Date        Date   `json:"date"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Amount      Money  `json:"amount"`
	}

	// ExpensePatch carries the fields of a partial update. Nil means
	// "keep the stored value".
	ExpensePatch struct {
		Date        *Date   `json:"date"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Amount      *Money  `json:"amount"`
	}
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrZeroDate        = errors.New("date is required")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrDescriptionLong = errors.New("description too long (max 200 characters)")
	ErrStorageUnready  = errors.New("storage unavailable")
)

const dateOnlyLayout = "2006-01-02"

// NewDate builds a midnight UTC instant for the given calendar date.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON emits the instant as RFC3339 in UTC.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON accepts RFC3339 timestamps and bare YYYY-MM-DD dates,
// the two shapes clients actually send.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return ErrZeroDate
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return errors.Join(ErrZeroDate, err)
	}
	d.Time = t
	return nil
}

// Validate checks the invariants required of a persisted record.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if e.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if len(e.Description) > 200 {
		return ErrDescriptionLong
	}
	return nil
}

// Normalize fills the defaults a sparse client payload relies on.
func (e *Expense) Normalize() {
	if strings.TrimSpace(e.Description) == "" {
		e.Description = DefaultDescription
	}
	if strings.TrimSpace(e.Category) == "" {
		e.Category = CategoryGeneral
	}
}
