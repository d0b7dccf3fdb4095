// Package store owns the canonical in-memory transaction collections for a
// session. Every mutation rewrites the affected collection to the local KV
// and schedules a debounced remote sync; mutations themselves never fail and
// never block on I/O beyond local persistence. Remote sync is optimistic:
// a failed sync leaves local state untouched and surfaces as a typed event.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"runway/internal/core"
	"runway/internal/storage"
)

// DefaultQuietPeriod is how long the store waits after the last mutation
// before handing off to the syncer. A new mutation restarts the countdown,
// coalescing bursts into a single sync.
const DefaultQuietPeriod = 2 * time.Second

const syncTimeout = 30 * time.Second

// Snapshot is a consistent copy of everything the remote backend holds for a
// user: both collections plus the balance scalars.
type Snapshot struct {
	Transactions []core.Transaction
	Recurring    []core.RecurringTransaction
	Balances     core.Balances
}

// Syncer pushes a snapshot to the remote backend. Implementations may push
// directly or just announce the change for a worker to pick up.
type Syncer interface {
	Sync(ctx context.Context, snap Snapshot) error
}

type Store struct {
	kv     storage.KV
	syncer Syncer
	quiet  time.Duration

	mu       sync.Mutex
	txs      []core.Transaction
	recs     []core.RecurringTransaction
	balances core.Balances
	subs     map[int]func(ChangeEvent)
	nextSub  int
	timer    *time.Timer
}

type Option func(*Store)

// WithSyncer injects the remote sync hand-off. Without one the store is
// local-only.
func WithSyncer(s Syncer) Option {
	return func(st *Store) { st.syncer = s }
}

// WithQuietPeriod overrides the debounce window, mainly for tests.
func WithQuietPeriod(d time.Duration) Option {
	return func(st *Store) { st.quiet = d }
}

// New loads the persisted collections from kv and returns a ready store.
// Malformed persisted records are dropped with a warning rather than
// aborting the load.
func New(ctx context.Context, kv storage.KV, opts ...Option) (*Store, error) {
	snap, err := LoadSnapshot(ctx, kv)
	if err != nil {
		return nil, err
	}
	st := &Store{
		kv:       kv,
		quiet:    DefaultQuietPeriod,
		txs:      snap.Transactions,
		recs:     snap.Recurring,
		balances: snap.Balances,
		subs:     make(map[int]func(ChangeEvent)),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st, nil
}

// LoadSnapshot reads the persisted collections and balances from kv. JSON
// that fails to decode yields an empty collection, not an error; only KV
// access failures propagate. The sync worker uses this to read the same
// database the server writes.
func LoadSnapshot(ctx context.Context, kv storage.KV) (Snapshot, error) {
	var snap Snapshot

	raw, ok, err := kv.Get(ctx, storage.KeyTransactions)
	if err != nil {
		return snap, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &snap.Transactions); err != nil {
			slog.Warn("Dropping undecodable transactions collection", "error", err)
			snap.Transactions = nil
		}
	}

	raw, ok, err = kv.Get(ctx, storage.KeyRecurring)
	if err != nil {
		return snap, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &snap.Recurring); err != nil {
			slog.Warn("Dropping undecodable recurring collection", "error", err)
			snap.Recurring = nil
		}
	}

	if v, ok, err := kv.Get(ctx, storage.KeyBankBalance); err != nil {
		return snap, err
	} else if ok {
		snap.Balances.Bank = v
	}
	if v, ok, err := kv.Get(ctx, storage.KeyDebtBalance); err != nil {
		return snap, err
	} else if ok {
		snap.Balances.Debt = v
	}

	return snap, nil
}

// Subscribe registers fn for change events. The returned function removes
// the subscription.
func (s *Store) Subscribe(fn func(ChangeEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Add inserts a one-time transaction. The caller is responsible for
// validation and for generating a collision-free ID.
func (s *Store) Add(ctx context.Context, tx core.Transaction) {
	s.mu.Lock()
	s.txs = append(s.txs, tx)
	s.persistTransactions(ctx)
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: EventTransactionAdded, ID: tx.ID})
	s.scheduleSync()
}

// AddRecurring inserts a recurring transaction definition.
func (s *Store) AddRecurring(ctx context.Context, rt core.RecurringTransaction) {
	s.mu.Lock()
	s.recs = append(s.recs, rt)
	s.persistRecurring(ctx)
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: EventRecurringAdded, ID: rt.ID, Recurring: true})
	s.scheduleSync()
}

// Delete removes by identity from the indicated collection. An absent
// identity is a no-op, not an error.
func (s *Store) Delete(ctx context.Context, id string, recurring bool) {
	s.mu.Lock()
	if recurring {
		kept := s.recs[:0]
		for _, rt := range s.recs {
			if rt.ID != id {
				kept = append(kept, rt)
			}
		}
		s.recs = kept
		s.persistRecurring(ctx)
	} else {
		kept := s.txs[:0]
		for _, tx := range s.txs {
			if tx.ID != id {
				kept = append(kept, tx)
			}
		}
		s.txs = kept
		s.persistTransactions(ctx)
	}
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: EventTransactionDeleted, ID: id, Recurring: recurring})
	s.scheduleSync()
}

// EditAmount replaces the amount of a matching entry, leaving every other
// field untouched. Absent identity is a no-op.
func (s *Store) EditAmount(ctx context.Context, id string, amount float64, recurring bool) {
	s.mu.Lock()
	if recurring {
		for i := range s.recs {
			if s.recs[i].ID == id {
				s.recs[i].Amount = amount
			}
		}
		s.persistRecurring(ctx)
	} else {
		for i := range s.txs {
			if s.txs[i].ID == id {
				s.txs[i].Amount = amount
			}
		}
		s.persistTransactions(ctx)
	}
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: EventAmountEdited, ID: id, Recurring: recurring})
	s.scheduleSync()
}

// ReplaceAll bulk-overwrites both collections, used when loading a user's
// data from the remote backend. It persists but does not schedule a sync:
// pushing freshly fetched data straight back would be a pointless round
// trip.
func (s *Store) ReplaceAll(ctx context.Context, txs []core.Transaction, recs []core.RecurringTransaction) {
	s.mu.Lock()
	s.txs = append([]core.Transaction(nil), txs...)
	s.recs = append([]core.RecurringTransaction(nil), recs...)
	s.persistTransactions(ctx)
	s.persistRecurring(ctx)
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: EventCollectionsReplaced})
}

// Restore replaces collections and balances with remotely fetched state.
// Unlike SetBalances it does not schedule a sync: pushing freshly fetched
// data straight back to the remote would be a pointless round trip.
func (s *Store) Restore(ctx context.Context, snap Snapshot) {
	s.mu.Lock()
	s.txs = append([]core.Transaction(nil), snap.Transactions...)
	s.recs = append([]core.RecurringTransaction(nil), snap.Recurring...)
	s.balances = snap.Balances
	s.persistTransactions(ctx)
	s.persistRecurring(ctx)
	if err := s.kv.Set(ctx, storage.KeyBankBalance, snap.Balances.Bank); err != nil {
		slog.ErrorContext(ctx, "Failed to persist bank balance", "error", err)
	}
	if err := s.kv.Set(ctx, storage.KeyDebtBalance, snap.Balances.Debt); err != nil {
		slog.ErrorContext(ctx, "Failed to persist debt balance", "error", err)
	}
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: EventCollectionsReplaced})
	s.publish(ChangeEvent{Kind: EventBalancesUpdated})
}

// SetBalances stores the balance scalars as decimal strings.
func (s *Store) SetBalances(ctx context.Context, bank, debt string) {
	s.mu.Lock()
	s.balances = core.Balances{Bank: bank, Debt: debt}
	if err := s.kv.Set(ctx, storage.KeyBankBalance, bank); err != nil {
		slog.ErrorContext(ctx, "Failed to persist bank balance", "error", err)
	}
	if err := s.kv.Set(ctx, storage.KeyDebtBalance, debt); err != nil {
		slog.ErrorContext(ctx, "Failed to persist debt balance", "error", err)
	}
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: EventBalancesUpdated})
	s.scheduleSync()
}

// Transactions returns a copy of the one-time collection.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...)
}

// Recurring returns a copy of the recurring collection.
func (s *Store) Recurring() []core.RecurringTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RecurringTransaction(nil), s.recs...)
}

// Balances returns the current balance scalars.
func (s *Store) Balances() core.Balances {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances
}

// Snapshot returns a consistent copy of the full store contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Transactions: append([]core.Transaction(nil), s.txs...),
		Recurring:    append([]core.RecurringTransaction(nil), s.recs...),
		Balances:     s.balances,
	}
}

// Flush cancels any pending debounce timer and runs the sync immediately.
// Called on shutdown so a burst just before exit is not lost.
func (s *Store) Flush(ctx context.Context) error {
	if s.syncer == nil {
		return nil
	}
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.syncer.Sync(ctx, s.Snapshot())
}

// persistTransactions rewrites the whole one-time collection. Caller holds
// the lock. Local persistence failures are logged, never returned: the
// in-memory state is canonical for the session.
func (s *Store) persistTransactions(ctx context.Context) {
	data, err := json.Marshal(s.txs)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode transactions", "error", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeyTransactions, string(data)); err != nil {
		slog.ErrorContext(ctx, "Failed to persist transactions", "error", err)
	}
}

func (s *Store) persistRecurring(ctx context.Context) {
	data, err := json.Marshal(s.recs)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode recurring transactions", "error", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeyRecurring, string(data)); err != nil {
		slog.ErrorContext(ctx, "Failed to persist recurring transactions", "error", err)
	}
}

func (s *Store) publish(ev ChangeEvent) {
	s.mu.Lock()
	fns := make([]func(ChangeEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// scheduleSync resets the quiet-period timer. Each mutation restarts the
// countdown rather than stacking pending syncs.
func (s *Store) scheduleSync() {
	if s.syncer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.runSync)
}

func (s *Store) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	snap := s.Snapshot()
	if err := s.syncer.Sync(ctx, snap); err != nil {
		// Local state stays the last-known-good optimistic value.
		slog.ErrorContext(ctx, "Remote sync failed", "error", err,
			"transactions", len(snap.Transactions),
			"recurring", len(snap.Recurring))
		s.publish(ChangeEvent{Kind: EventSyncFailed, Err: err})
		return
	}
	s.publish(ChangeEvent{Kind: EventSyncSucceeded})
}
