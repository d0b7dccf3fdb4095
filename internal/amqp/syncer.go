package amqp

import (
	"context"

	"runway/internal/store"
)

// SyncPublisher satisfies store.Syncer by announcing that the user's
// collections changed instead of pushing data itself. The snapshot is
// ignored: the worker re-reads the current state from the database, so a
// burst of announcements collapses into whatever is persisted when the
// worker gets around to it.
type SyncPublisher struct {
	client *Client
	userID string
}

var _ store.Syncer = (*SyncPublisher)(nil)

func NewSyncPublisher(client *Client, userID string) *SyncPublisher {
	return &SyncPublisher{client: client, userID: userID}
}

func (p *SyncPublisher) Sync(ctx context.Context, _ store.Snapshot) error {
	return p.client.PublishCollectionsChanged(ctx, p.userID)
}
