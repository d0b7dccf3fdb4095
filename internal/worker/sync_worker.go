package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"runway/internal/amqp"
	"runway/internal/remote"
	"runway/internal/storage"
	"runway/internal/store"
)

// SyncWorker pushes the locally persisted collections to the remote backend.
// Messages only announce that something changed; the worker always reads the
// current snapshot from the database, so whatever state is persisted when the
// message is handled wins.
type SyncWorker struct {
	kv     storage.KV
	remote remote.Client
	userID string
}

func NewSyncWorker(kv storage.KV, remoteClient remote.Client, userID string) *SyncWorker {
	return &SyncWorker{
		kv:     kv,
		remote: remoteClient,
		userID: userID,
	}
}

// HandleCollectionsChanged processes a single collections changed message from AMQP
func (w *SyncWorker) HandleCollectionsChanged(ctx context.Context, msg *amqp.CollectionsChangedMessage) error {
	slog.InfoContext(ctx, "Processing collections changed message",
		"user_id", msg.UserID,
		"sent_at", msg.Timestamp.Format(time.RFC3339))

	if msg.UserID != w.userID {
		slog.WarnContext(ctx, "Message for a different user, ignoring",
			"message_user_id", msg.UserID,
			"worker_user_id", w.userID)
		return nil
	}

	return w.pushSnapshot(ctx)
}

// Reconcile pushes the current snapshot regardless of pending messages.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) Reconcile(ctx context.Context) error {
	slog.InfoContext(ctx, "Reconciling local collections with remote backend", "user_id", w.userID)
	return w.pushSnapshot(ctx)
}

func (w *SyncWorker) pushSnapshot(ctx context.Context) error {
	snap, err := store.LoadSnapshot(ctx, w.kv)
	if err != nil {
		return fmt.Errorf("load snapshot from storage: %w", err)
	}

	if err := remote.Push(ctx, w.remote, w.userID, snap); err != nil {
		return fmt.Errorf("push snapshot to remote: %w", err)
	}

	slog.InfoContext(ctx, "Successfully pushed snapshot",
		"user_id", w.userID,
		"transactions", len(snap.Transactions),
		"recurring", len(snap.Recurring))

	return nil
}
