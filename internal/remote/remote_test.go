package remote

import (
	"context"
	"testing"

	"runway/internal/core"
	"runway/internal/store"
)

func sampleSnapshot() store.Snapshot {
	return store.Snapshot{
		Transactions: []core.Transaction{
			{
				ID:          "t1",
				Amount:      120.50,
				Description: "groceries",
				Date:        core.NewDate(2026, 6, 3),
				Category:    core.CategoryFood,
			},
		},
		Recurring: []core.RecurringTransaction{
			{
				Transaction: core.Transaction{
					ID:          "r1",
					Amount:      2500,
					Description: "salary",
					IsIncome:    true,
					Date:        core.NewDate(2026, 1, 1),
					Category:    core.CategorySalary,
				},
				StartDate: core.NewDate(2026, 1, 1),
			},
		},
		Balances: core.Balances{Bank: "1000", Debt: "200"},
	}
}

func TestPushFetchRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := NewMemory()
	snap := sampleSnapshot()

	if err := Push(ctx, client, "user-1", snap); err != nil {
		t.Fatalf("Push: %v", err)
	}

	got, err := Fetch(ctx, client, "user-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(got.Transactions) != 1 || got.Transactions[0].ID != "t1" {
		t.Fatalf("fetched transactions = %+v", got.Transactions)
	}
	if got.Transactions[0].Date.String() != "2026-06-03" {
		t.Errorf("date = %q, want 2026-06-03", got.Transactions[0].Date.String())
	}
	if got.Transactions[0].Category != core.CategoryFood {
		t.Errorf("category = %q, want food", got.Transactions[0].Category)
	}
	if len(got.Recurring) != 1 || got.Recurring[0].StartDate.String() != "2026-01-01" {
		t.Fatalf("fetched recurring = %+v", got.Recurring)
	}
	if got.Balances.Bank != "1000" || got.Balances.Debt != "200" {
		t.Errorf("balances = %+v", got.Balances)
	}
}

func TestPushIsLastWriterWins(t *testing.T) {
	ctx := context.Background()
	client := NewMemory()

	if err := Push(ctx, client, "user-1", sampleSnapshot()); err != nil {
		t.Fatalf("Push: %v", err)
	}
	// A second push with an empty snapshot wipes the first wholesale.
	if err := Push(ctx, client, "user-1", store.Snapshot{}); err != nil {
		t.Fatalf("Push empty: %v", err)
	}

	rows, err := client.Transactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("transactions after empty push = %d, want 0 (whole-collection overwrite)", len(rows))
	}
}

func TestPushIsScopedToUser(t *testing.T) {
	ctx := context.Background()
	client := NewMemory()

	if err := Push(ctx, client, "user-1", sampleSnapshot()); err != nil {
		t.Fatalf("Push user-1: %v", err)
	}
	if err := Push(ctx, client, "user-2", store.Snapshot{}); err != nil {
		t.Fatalf("Push user-2: %v", err)
	}

	rows, _ := client.Transactions(ctx, "user-1")
	if len(rows) != 1 {
		t.Errorf("user-1 transactions = %d, want 1 (other users' pushes must not interfere)", len(rows))
	}
}

func TestFetchUnknownUserYieldsEmptySnapshot(t *testing.T) {
	got, err := Fetch(context.Background(), NewMemory(), "nobody")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got.Transactions) != 0 || len(got.Recurring) != 0 {
		t.Errorf("snapshot for unknown user = %+v, want empty", got)
	}
}

func TestSnapshotFromRows_LenientDatesAndCategories(t *testing.T) {
	snap := SnapshotFromRows(
		[]TransactionRow{
			{ID: "bad", Amount: 5, Description: "broken date", Date: "not-a-date", Category: "petcare"},
		},
		[]RecurringRow{
			{ID: "r", Amount: 10, Description: "ok", IsIncome: true, Date: "2026-01-01", StartDate: "2026-01-01", Category: "salary"},
		},
		UserData{UserID: "u", BankBalance: "10", DebtBalance: "0"},
	)

	if snap.Transactions[0].Date.Valid() {
		t.Error("malformed date should convert to the zero date")
	}
	if snap.Transactions[0].Category != core.CategoryOther {
		t.Errorf("unknown category = %q, want other", snap.Transactions[0].Category)
	}
	if snap.Recurring[0].Category != core.CategorySalary {
		t.Errorf("category = %q, want salary", snap.Recurring[0].Category)
	}
}
