package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDueDate = errors.New("due date must be a valid calendar date")
)

// DueDateLayout is the wire format for calendar dates.
const DueDateLayout = "2006-01-02"

// DueDate represents a calendar date with no time-of-day or timezone.
// Internally anchored at UTC midnight so day arithmetic is exact.
type DueDate struct {
	value time.Time
}

// NewDueDate creates a DueDate from calendar components.
func NewDueDate(year int, month time.Month, day int) DueDate {
	return DueDate{value: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDueDate parses a date in YYYY-MM-DD format.
func ParseDueDate(s string) (DueDate, error) {
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return DueDate{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDueDate, s)
	}
	return DueDate{value: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
}

// DueDateOf truncates an instant to its calendar date. The instant's own
// location decides which calendar day it falls on.
func DueDateOf(t time.Time) DueDate {
	return NewDueDate(t.Year(), t.Month(), t.Day())
}

// DaysUntil returns the signed day offset from today to the due date.
// Negative means overdue.
func (d DueDate) DaysUntil(today DueDate) int {
	return int(d.value.Sub(today.value).Hours() / 24)
}

// IsZero reports whether the date is unset.
func (d DueDate) IsZero() bool {
	return d.value.IsZero()
}

// Equal reports whether two dates name the same calendar day.
func (d DueDate) Equal(other DueDate) bool {
	return d.value.Equal(other.value)
}

// String returns the date in YYYY-MM-DD format.
func (d DueDate) String() string {
	return d.value.Format(DueDateLayout)
}
