package engine

import (
	"time"

	"runway/internal/core"
)

// RecurringTotals is the unsigned monthly flow from recurring transactions.
type RecurringTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// AnnualSummary aggregates a calendar year. Recurring contributions are
// annualized as amount×12 for every recurring transaction whose start year
// is at or before the summary year; they are not pro-rated by the number of
// months actually active within the year.
type AnnualSummary struct {
	TotalIncome         float64 `json:"totalIncome"`
	TotalExpenses       float64 `json:"totalExpenses"`
	ProfitLoss          float64 `json:"profitLoss"`
	RecurringIncome     float64 `json:"recurringIncome"`
	RecurringExpenses   float64 `json:"recurringExpenses"`
	RecurringDifference float64 `json:"recurringDifference"`
}

// MonthlyBalance returns the signed delta for target's calendar month:
// one-time transactions dated in that month plus recurring transactions
// whose start date is at or before target itself, each signed by direction.
// There is no carry from prior months; this is a per-month delta, not the
// runway's cumulative balance.
func MonthlyBalance(target time.Time, txs []core.Transaction, recs []core.RecurringTransaction) float64 {
	total := 0.0
	for _, tx := range txs {
		if !sameMonth(tx.Date, target) {
			continue
		}
		total += signed(tx.Amount, tx.IsIncome)
	}
	for _, rt := range recs {
		if !activeAt(rt, target) {
			continue
		}
		total += signed(rt.Amount, rt.IsIncome)
	}
	return core.Round2(total)
}

// MonthlyRecurringTotals sums the recurring transactions active as of target
// (start date ≤ target), split by direction as unsigned magnitudes.
func MonthlyRecurringTotals(target time.Time, recs []core.RecurringTransaction) RecurringTotals {
	var totals RecurringTotals
	for _, rt := range recs {
		if !activeAt(rt, target) {
			continue
		}
		if rt.IsIncome {
			totals.Income += rt.Amount
		} else {
			totals.Expenses += rt.Amount
		}
	}
	totals.Income = core.Round2(totals.Income)
	totals.Expenses = core.Round2(totals.Expenses)
	return totals
}

// AnnualTotals aggregates the given calendar year: one-time transactions
// dated within it plus annualized recurring transactions active by start
// year.
func AnnualTotals(year int, txs []core.Transaction, recs []core.RecurringTransaction) AnnualSummary {
	var s AnnualSummary
	for _, rt := range recs {
		if !rt.StartDate.Valid() || rt.StartDate.Year() > year {
			continue
		}
		annual := rt.Amount * 12
		if rt.IsIncome {
			s.RecurringIncome += annual
		} else {
			s.RecurringExpenses += annual
		}
	}
	s.TotalIncome = s.RecurringIncome
	s.TotalExpenses = s.RecurringExpenses
	for _, tx := range txs {
		if !tx.Date.Valid() || tx.Date.Year() != year {
			continue
		}
		if tx.IsIncome {
			s.TotalIncome += tx.Amount
		} else {
			s.TotalExpenses += tx.Amount
		}
	}

	s.TotalIncome = core.Round2(s.TotalIncome)
	s.TotalExpenses = core.Round2(s.TotalExpenses)
	s.RecurringIncome = core.Round2(s.RecurringIncome)
	s.RecurringExpenses = core.Round2(s.RecurringExpenses)
	s.ProfitLoss = core.Round2(s.TotalIncome - s.TotalExpenses)
	s.RecurringDifference = core.Round2(s.RecurringIncome - s.RecurringExpenses)
	return s
}

// CategoryTotals breaks down expense flow for refMonth's calendar month by
// category: one-time expense transactions dated in that month plus recurring
// expense transactions active as of refMonth (same date bound as the monthly
// helpers). Totals are absolute magnitudes keyed by normalized category.
func CategoryTotals(txs []core.Transaction, recs []core.RecurringTransaction, refMonth time.Time) map[core.Category]float64 {
	totals := make(map[core.Category]float64)
	add := func(cat core.Category, amount float64) {
		if amount < 0 {
			amount = -amount
		}
		totals[core.NormalizeCategory(cat, false)] += amount
	}

	for _, tx := range txs {
		if tx.IsIncome || !sameMonth(tx.Date, refMonth) {
			continue
		}
		add(tx.Category, tx.Amount)
	}
	for _, rt := range recs {
		if rt.IsIncome || !activeAt(rt, refMonth) {
			continue
		}
		add(rt.Category, rt.Amount)
	}

	for cat, v := range totals {
		totals[cat] = core.Round2(v)
	}
	return totals
}

func signed(amount float64, income bool) float64 {
	if income {
		return amount
	}
	return -amount
}
