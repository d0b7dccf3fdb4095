package remote

import (
	"context"
	"fmt"

	"runway/internal/store"
)

// Pusher implements store.Syncer by writing the snapshot straight to the
// remote backend: full replace for both collections, upsert for the
// balances row. Used when the server runs without a message broker; with
// AMQP configured the hand-off goes through the sync worker instead.
type Pusher struct {
	client Client
	userID string
}

func NewPusher(client Client, userID string) *Pusher {
	return &Pusher{client: client, userID: userID}
}

var _ store.Syncer = (*Pusher)(nil)

func (p *Pusher) Sync(ctx context.Context, snap store.Snapshot) error {
	return Push(ctx, p.client, p.userID, snap)
}

// Push overwrites the user's remote state with the snapshot. No conflict
// resolution: the last writer wins.
func Push(ctx context.Context, client Client, userID string, snap store.Snapshot) error {
	txRows, recRows, userData := RowsFromSnapshot(userID, snap)

	if err := client.ReplaceTransactions(ctx, userID, txRows); err != nil {
		return fmt.Errorf("push transactions: %w", err)
	}
	if err := client.ReplaceRecurring(ctx, userID, recRows); err != nil {
		return fmt.Errorf("push recurring: %w", err)
	}
	if err := client.UpsertUserData(ctx, userData); err != nil {
		return fmt.Errorf("push user data: %w", err)
	}
	return nil
}

// Fetch loads the user's full remote state as a snapshot, the input for the
// store's ReplaceAll path after sign-in.
func Fetch(ctx context.Context, client Client, userID string) (store.Snapshot, error) {
	txRows, err := client.Transactions(ctx, userID)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("fetch transactions: %w", err)
	}
	recRows, err := client.Recurring(ctx, userID)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("fetch recurring: %w", err)
	}
	userData, ok, err := client.GetUserData(ctx, userID)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("fetch user data: %w", err)
	}
	if !ok {
		userData = UserData{UserID: userID}
	}
	return SnapshotFromRows(txRows, recRows, userData), nil
}
