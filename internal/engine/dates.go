package engine

import (
	"time"

	"runway/internal/core"
)

// monthStart returns the first day of t's calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// endOfMonth returns the last day of t's calendar month.
func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// sameMonth reports whether d falls in the calendar month of m.
// Invalid dates belong to no month.
func sameMonth(d core.Date, m time.Time) bool {
	if !d.Valid() {
		return false
	}
	return d.Year() == m.Year() && d.Month() == m.Month()
}

// activeInMonth reports whether a recurring transaction is active in the
// month of m: its start date is at or before the end of that month. This is
// the runway builder's bound.
func activeInMonth(rt core.RecurringTransaction, m time.Time) bool {
	if !rt.StartDate.Valid() {
		return false
	}
	return !rt.StartDate.After(endOfMonth(m))
}

// activeAt reports whether a recurring transaction is active as of the target
// date itself. The monthly and category helpers compare against the target
// date rather than the end of its month, a deliberately looser bound than
// activeInMonth; see the tests documenting the discrepancy.
func activeAt(rt core.RecurringTransaction, target time.Time) bool {
	if !rt.StartDate.Valid() {
		return false
	}
	return !rt.StartDate.After(target)
}
