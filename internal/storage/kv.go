// Package storage provides the local key-value persistence consumed by the
// transaction store. The canonical keys mirror the browser-storage layout of
// the original data: whole collections serialized as JSON arrays plus the
// two balance scalars as decimal strings.
package storage

import "context"

// Well-known keys.
const (
	KeyTransactions = "transactions"
	KeyRecurring    = "recurringTransactions"
	KeyBankBalance  = "bankBalance"
	KeyDebtBalance  = "debtBalance"
)

// KV is the local persistence contract. Implementations must be safe for
// concurrent use. Get reports presence separately from errors so a missing
// key is not an error condition.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
