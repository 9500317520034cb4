// Package syncqueue owns the sync_queue table: the only durable record of
// what must still reach the remote store.
package syncqueue

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/models"
)

// Repository is the queue storage contract. Entries are mutated exclusively
// by the Manager and the sync engine.
type Repository interface {
	// Enqueue idempotently records an obligation; an existing entry for the
	// same (table, record, operation) key is replaced and its retry state
	// reset (latest write wins within an operation type).
	Enqueue(ctx context.Context, e *models.QueueEntry) error

	// Drainable returns up to limit entries with retry_count below the
	// ceiling and no permanent failure stamp, oldest first.
	Drainable(ctx context.Context, limit, maxRetries int) ([]models.QueueEntry, error)

	// Remove deletes a queue entry after its obligation is satisfied.
	Remove(ctx context.Context, id string) error

	// RecordFailure increments retry_count, stores the error text, and stamps
	// failed_at once the new count reaches maxRetries. Returns the new count.
	RecordFailure(ctx context.Context, id, lastError string, maxRetries int, now string) (int, error)

	// FailedEntries lists permanently failed entries, kept for diagnostics.
	FailedEntries(ctx context.Context) ([]models.QueueEntry, error)

	// CountPending returns the number of entries still eligible for a drain.
	CountPending(ctx context.Context, maxRetries int) (int, error)
}
