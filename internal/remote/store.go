// Package remote is the boundary to the cloud store. The sync engine only
// depends on the Store interface; the HTTP implementation talks to a
// Supabase-style REST endpoint.
package remote

import "context"

// Record is one row in the remote schema, already mapped from local field
// names. Values are plaintext metadata or cipher tokens, never decrypted
// content.
type Record map[string]any

// Store is the consumed upsert/delete contract. Delivery is at-least-once
// from the caller's perspective; idempotency comes from deterministic remote
// ids and upsert-on-conflict.
type Store interface {
	// Upsert inserts or updates a record keyed by conflictKey.
	Upsert(ctx context.Context, table string, record Record, conflictKey string) error

	// Delete removes the record with the given remote id, scoped to the
	// owning user.
	Delete(ctx context.Context, table, id, userID string) error
}
