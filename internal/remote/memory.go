package remote

import (
	"context"
	"sync"
)

// Memory is an in-process Client used by tests and as the default backend
// when no remote is configured.
type Memory struct {
	mu    sync.Mutex
	txs   map[string][]TransactionRow
	recs  map[string][]RecurringRow
	users map[string]UserData
}

func NewMemory() *Memory {
	return &Memory{
		txs:   make(map[string][]TransactionRow),
		recs:  make(map[string][]RecurringRow),
		users: make(map[string]UserData),
	}
}

func (m *Memory) ReplaceTransactions(_ context.Context, userID string, rows []TransactionRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[userID] = append([]TransactionRow(nil), rows...)
	return nil
}

func (m *Memory) ReplaceRecurring(_ context.Context, userID string, rows []RecurringRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[userID] = append([]RecurringRow(nil), rows...)
	return nil
}

func (m *Memory) UpsertUserData(_ context.Context, data UserData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[data.UserID] = data
	return nil
}

func (m *Memory) Transactions(_ context.Context, userID string) ([]TransactionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TransactionRow(nil), m.txs[userID]...), nil
}

func (m *Memory) Recurring(_ context.Context, userID string) ([]RecurringRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecurringRow(nil), m.recs[userID]...), nil
}

func (m *Memory) GetUserData(_ context.Context, userID string) (UserData, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.users[userID]
	return data, ok, nil
}
