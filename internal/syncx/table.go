package syncx

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/remote"
)

// TableSyncer adapts one syncable local table to the engine. Each
// implementation knows how to fetch its record, translate it to the remote
// schema, and record a successful sync. Adding a syncable entity means
// registering a new syncer, not editing the engine's control flow.
type TableSyncer interface {
	// Table is the local table name this syncer serves.
	Table() string

	// BuildRemote fetches the current local record and maps it to the remote
	// schema, returning the record and the remote id it upserts under
	// (derived on first sync). Returns common.ErrNotFound when the record no
	// longer exists locally.
	BuildRemote(ctx context.Context, recordID string) (remote.Record, string, error)

	// ApplyUpserted marks the local record synced under the given remote id.
	ApplyUpserted(ctx context.Context, recordID, supabaseID string) error
}
