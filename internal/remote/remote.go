// Package remote provides the client for the hosted backend: three logical
// tables (transactions, recurring_transactions, user_data) keyed by an
// opaque user identifier. Collections are written with full replace
// (delete-then-insert) and user_data with upsert; the two strategies are
// deliberate alternatives, not candidates for merging. Whole-collection
// overwrite means the last writer wins across devices; that is a documented
// limitation of the sync design, not something this package papers over.
package remote

import "context"

// TransactionRow is the row shape of the transactions table. Dates travel
// as ISO strings, amounts as plain numbers.
type TransactionRow struct {
	ID          string  `bson:"_id" json:"id"`
	UserID      string  `bson:"user_id" json:"userId"`
	Amount      float64 `bson:"amount" json:"amount"`
	Description string  `bson:"description" json:"description"`
	IsIncome    bool    `bson:"is_income" json:"isIncome"`
	Date        string  `bson:"date" json:"date"`
	Category    string  `bson:"category" json:"category"`
}

// RecurringRow is the row shape of the recurring_transactions table.
type RecurringRow struct {
	ID          string  `bson:"_id" json:"id"`
	UserID      string  `bson:"user_id" json:"userId"`
	Amount      float64 `bson:"amount" json:"amount"`
	Description string  `bson:"description" json:"description"`
	IsIncome    bool    `bson:"is_income" json:"isIncome"`
	Date        string  `bson:"date" json:"date"`
	StartDate   string  `bson:"start_date" json:"startDate"`
	Category    string  `bson:"category" json:"category"`
}

// UserData is the single user_data row per user holding the balance
// scalars, stored as decimal strings.
type UserData struct {
	UserID      string `bson:"_id" json:"userId"`
	BankBalance string `bson:"bank_balance" json:"bankBalance"`
	DebtBalance string `bson:"debt_balance" json:"debtBalance"`
}

// Client is the remote backend contract consumed by the syncer and the
// worker.
type Client interface {
	// ReplaceTransactions overwrites the user's one-time rows
	// (delete-then-insert).
	ReplaceTransactions(ctx context.Context, userID string, rows []TransactionRow) error
	// ReplaceRecurring overwrites the user's recurring rows.
	ReplaceRecurring(ctx context.Context, userID string, rows []RecurringRow) error
	// UpsertUserData inserts or updates the user's balances row.
	UpsertUserData(ctx context.Context, data UserData) error

	// Transactions fetches the user's one-time rows.
	Transactions(ctx context.Context, userID string) ([]TransactionRow, error)
	// Recurring fetches the user's recurring rows.
	Recurring(ctx context.Context, userID string) ([]RecurringRow, error)
	// GetUserData fetches the user's balances row; ok is false when the user
	// has no row yet.
	GetUserData(ctx context.Context, userID string) (data UserData, ok bool, err error)
}
