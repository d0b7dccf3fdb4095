package remote

import (
	"runway/internal/core"
	"runway/internal/store"
)

// RowsFromSnapshot converts a store snapshot into the three table payloads
// for the given user.
func RowsFromSnapshot(userID string, snap store.Snapshot) ([]TransactionRow, []RecurringRow, UserData) {
	txRows := make([]TransactionRow, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		txRows = append(txRows, TransactionRow{
			ID:          tx.ID,
			UserID:      userID,
			Amount:      tx.Amount,
			Description: tx.Description,
			IsIncome:    tx.IsIncome,
			Date:        tx.Date.String(),
			Category:    string(tx.Category),
		})
	}

	recRows := make([]RecurringRow, 0, len(snap.Recurring))
	for _, rt := range snap.Recurring {
		recRows = append(recRows, RecurringRow{
			ID:          rt.ID,
			UserID:      userID,
			Amount:      rt.Amount,
			Description: rt.Description,
			IsIncome:    rt.IsIncome,
			Date:        rt.Date.String(),
			StartDate:   rt.StartDate.String(),
			Category:    string(rt.Category),
		})
	}

	return txRows, recRows, UserData{
		UserID:      userID,
		BankBalance: snap.Balances.Bank,
		DebtBalance: snap.Balances.Debt,
	}
}

// SnapshotFromRows converts fetched rows back into a store snapshot, e.g.
// when loading a user's data after sign-in. Dates are parsed leniently;
// rows with broken dates survive the conversion and are excluded from
// aggregates downstream.
func SnapshotFromRows(txRows []TransactionRow, recRows []RecurringRow, data UserData) store.Snapshot {
	txs := make([]core.Transaction, 0, len(txRows))
	for _, r := range txRows {
		txs = append(txs, core.Transaction{
			ID:          r.ID,
			Amount:      r.Amount,
			Description: r.Description,
			IsIncome:    r.IsIncome,
			Date:        core.ParseDate(r.Date),
			Category:    core.NormalizeCategory(core.Category(r.Category), r.IsIncome),
		})
	}

	recs := make([]core.RecurringTransaction, 0, len(recRows))
	for _, r := range recRows {
		recs = append(recs, core.RecurringTransaction{
			Transaction: core.Transaction{
				ID:          r.ID,
				Amount:      r.Amount,
				Description: r.Description,
				IsIncome:    r.IsIncome,
				Date:        core.ParseDate(r.Date),
				Category:    core.NormalizeCategory(core.Category(r.Category), r.IsIncome),
			},
			StartDate: core.ParseDate(r.StartDate),
		})
	}

	return store.Snapshot{
		Transactions: txs,
		Recurring:    recs,
		Balances: core.Balances{
			Bank: data.BankBalance,
			Debt: data.DebtBalance,
		},
	}
}
