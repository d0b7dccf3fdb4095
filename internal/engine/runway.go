// Package engine implements the runway and aggregation computations. Every
// function here is pure: no I/O, no mutation of inputs, deterministic for a
// given reference date. Records with invalid dates are skipped rather than
// reported, so the engine is total over its input shape and safe to call on
// every refresh.
package engine

import (
	"time"

	"runway/internal/core"
)

// Window offsets around the reference month: 6 months of history and 11
// months of forecast, 18 points in total.
const (
	runwayStartOffset = -6
	runwayEndOffset   = 11
	RunwayPoints      = runwayEndOffset - runwayStartOffset + 1
)

// MonthPoint is one month of the runway series.
type MonthPoint struct {
	Month    string  `json:"month"`
	Balance  float64 `json:"balance"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// BuildRunway projects the account balance across an 18-month window around
// ref, from 6 months before its month through 11 months after, in
// chronological order.
//
// The running balance is a cumulative fold: it starts at bank−debt (or 0
// when includeInitial is false) and each month adds that month's income and
// subtracts its expenses. A recurring transaction contributes its full
// amount to every month whose end it starts at or before, including months
// before the window's first point; a one-time transaction contributes only
// to its own calendar month. Accumulation runs at full precision and values
// are rounded half-up to two decimals only on output.
func BuildRunway(includeInitial bool, bank, debt float64, txs []core.Transaction, recs []core.RecurringTransaction, ref time.Time) []MonthPoint {
	running := 0.0
	if includeInitial {
		running = bank - debt
	}

	points := make([]MonthPoint, 0, RunwayPoints)
	start := monthStart(ref)
	for i := runwayStartOffset; i <= runwayEndOffset; i++ {
		m := start.AddDate(0, i, 0)
		income, expenses := monthTotals(m, txs, recs)
		running += income - expenses
		points = append(points, MonthPoint{
			Month:    m.Format("Jan"),
			Balance:  core.Round2(running),
			Income:   core.Round2(income),
			Expenses: core.Round2(expenses),
		})
	}
	return points
}

// monthTotals sums the unsigned income and expense flow for the calendar
// month of m: all recurring transactions active in that month plus the
// one-time transactions dated within it.
func monthTotals(m time.Time, txs []core.Transaction, recs []core.RecurringTransaction) (income, expenses float64) {
	for _, rt := range recs {
		if !activeInMonth(rt, m) {
			continue
		}
		if rt.IsIncome {
			income += rt.Amount
		} else {
			expenses += rt.Amount
		}
	}
	for _, tx := range txs {
		if !sameMonth(tx.Date, m) {
			continue
		}
		if tx.IsIncome {
			income += tx.Amount
		} else {
			expenses += tx.Amount
		}
	}
	return income, expenses
}
