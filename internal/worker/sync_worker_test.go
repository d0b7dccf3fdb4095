package worker

import (
	"context"
	"encoding/json"
	"testing"

	"runway/internal/amqp"
	"runway/internal/core"
	"runway/internal/remote"
	"runway/internal/storage"
)

func seedKV(t *testing.T, kv storage.KV, txs []core.Transaction, recs []core.RecurringTransaction) {
	t.Helper()
	ctx := context.Background()

	txJSON, err := json.Marshal(txs)
	if err != nil {
		t.Fatalf("marshal transactions: %v", err)
	}
	if err := kv.Set(ctx, storage.KeyTransactions, string(txJSON)); err != nil {
		t.Fatalf("seed transactions: %v", err)
	}

	recJSON, err := json.Marshal(recs)
	if err != nil {
		t.Fatalf("marshal recurring: %v", err)
	}
	if err := kv.Set(ctx, storage.KeyRecurring, string(recJSON)); err != nil {
		t.Fatalf("seed recurring: %v", err)
	}

	if err := kv.Set(ctx, storage.KeyBankBalance, "1200.50"); err != nil {
		t.Fatalf("seed bank balance: %v", err)
	}
	if err := kv.Set(ctx, storage.KeyDebtBalance, "300"); err != nil {
		t.Fatalf("seed debt balance: %v", err)
	}
}

func TestHandleCollectionsChanged_PushesPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	backend := remote.NewMemory()

	seedKV(t, kv,
		[]core.Transaction{
			{ID: "tx-1", Amount: 42.50, Description: "groceries", Date: core.NewDate(2026, 3, 5), Category: core.CategoryFood},
		},
		[]core.RecurringTransaction{
			{Transaction: core.Transaction{ID: "rec-1", Amount: 1500, Description: "salary", IsIncome: true, Category: core.CategorySalary}, StartDate: core.NewDate(2026, 1, 1)},
		},
	)

	w := NewSyncWorker(kv, backend, "user-1")
	msg := amqp.NewCollectionsChangedMessage("user-1")
	if err := w.HandleCollectionsChanged(ctx, msg); err != nil {
		t.Fatalf("HandleCollectionsChanged() error = %v", err)
	}

	rows, err := backend.Transactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "tx-1" {
		t.Fatalf("remote transactions = %+v, want single tx-1", rows)
	}

	recRows, err := backend.Recurring(ctx, "user-1")
	if err != nil {
		t.Fatalf("Recurring() error = %v", err)
	}
	if len(recRows) != 1 || recRows[0].ID != "rec-1" {
		t.Fatalf("remote recurring = %+v, want single rec-1", recRows)
	}

	data, ok, err := backend.GetUserData(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserData() error = %v", err)
	}
	if !ok {
		t.Fatal("GetUserData() ok = false, want true")
	}
	if data.BankBalance != "1200.50" || data.DebtBalance != "300" {
		t.Errorf("user data = %+v, want balances 1200.50/300", data)
	}
}

func TestHandleCollectionsChanged_IgnoresOtherUsers(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	backend := remote.NewMemory()

	seedKV(t, kv, []core.Transaction{{ID: "tx-1", Amount: 10, Description: "coffee", Date: core.NewDate(2026, 3, 5)}}, nil)

	w := NewSyncWorker(kv, backend, "user-1")
	if err := w.HandleCollectionsChanged(ctx, amqp.NewCollectionsChangedMessage("someone-else")); err != nil {
		t.Fatalf("HandleCollectionsChanged() error = %v", err)
	}

	rows, err := backend.Transactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("remote transactions = %d rows, want 0 for foreign-user message", len(rows))
	}
}

func TestReconcile_ReplacesStaleRemoteState(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	backend := remote.NewMemory()

	// Remote already holds a row that no longer exists locally.
	if err := backend.ReplaceTransactions(ctx, "user-1", []remote.TransactionRow{
		{ID: "stale", UserID: "user-1", Amount: 1, Description: "gone", Date: "2025-01-01"},
	}); err != nil {
		t.Fatalf("seed remote: %v", err)
	}

	seedKV(t, kv, []core.Transaction{{ID: "tx-2", Amount: 5, Description: "bus", Date: core.NewDate(2026, 4, 2), Category: core.CategoryTransport}}, nil)

	w := NewSyncWorker(kv, backend, "user-1")
	if err := w.Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	rows, err := backend.Transactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "tx-2" {
		t.Fatalf("remote transactions = %+v, want single tx-2 after reconcile", rows)
	}
}

func TestReconcile_EmptyDatabasePushesEmptyCollections(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	backend := remote.NewMemory()

	w := NewSyncWorker(kv, backend, "user-1")
	if err := w.Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	rows, err := backend.Transactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("remote transactions = %d rows, want 0", len(rows))
	}
}
