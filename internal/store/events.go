package store

// EventKind identifies what changed. Consumers subscribe to the store and
// receive typed events instead of an untyped global broadcast.
type EventKind string

const (
	EventTransactionAdded    EventKind = "transaction_added"
	EventRecurringAdded      EventKind = "recurring_added"
	EventTransactionDeleted  EventKind = "transaction_deleted"
	EventAmountEdited        EventKind = "amount_edited"
	EventCollectionsReplaced EventKind = "collections_replaced"
	EventBalancesUpdated     EventKind = "balances_updated"
	EventSyncSucceeded       EventKind = "sync_succeeded"
	EventSyncFailed          EventKind = "sync_failed"
)

// ChangeEvent describes a single store change or sync outcome. Err is set
// only for EventSyncFailed; sync failures are notifications, never errors
// returned from mutations.
type ChangeEvent struct {
	Kind      EventKind
	ID        string
	Recurring bool
	Err       error
}
