package syncqueue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/models"
)

// syncableTables guards the dynamic table name used by EnqueueDelete's
// supabase_id lookup. Only these tables ever appear in the queue.
var syncableTables = map[string]struct{}{
	common.TableJournalEntries:     {},
	common.TableStepWork:           {},
	common.TableDailyCheckins:      {},
	common.TableFavoriteMeetings:   {},
	common.TableReadingReflections: {},
}

// Manager is the single producer of sync obligations. Domain services call it
// inside the same transaction as the record write, so a committed mutation
// always has its queue entry.
type Manager struct {
	db dbx.DBTX
}

func NewManager(db dbx.DBTX) *Manager {
	return &Manager{db: db}
}

func (m *Manager) repo() Repository {
	return NewSQLiteRepository(m.db)
}

// Enqueue records an insert/update/delete obligation for a record.
func (m *Manager) Enqueue(ctx context.Context, table, recordID string, op models.Operation, supabaseID string) error {
	if _, ok := syncableTables[table]; !ok {
		return fmt.Errorf("table %q is not syncable", table)
	}
	e := &models.QueueEntry{
		ID:         uuid.NewString(),
		TableName:  table,
		RecordID:   recordID,
		Operation:  op,
		SupabaseID: supabaseID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	return m.repo().Enqueue(ctx, e)
}

// EnqueueDelete records a delete obligation. The record is about to be
// physically removed from the local store, so its current supabase_id is
// captured here first; once the row is gone the remote identity would be
// lost. A record that never synced enqueues with an empty supabase_id and the
// engine resolves it as a local no-op.
func (m *Manager) EnqueueDelete(ctx context.Context, table, recordID, userID string) error {
	if _, ok := syncableTables[table]; !ok {
		return fmt.Errorf("table %q is not syncable", table)
	}

	var supabaseID sql.NullString
	query := `SELECT supabase_id FROM ` + table + ` WHERE id = ? AND user_id = ?`
	err := m.db.QueryRowContext(ctx, query, recordID, userID).Scan(&supabaseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to look up remote id for delete: %w", err)
	}

	return m.Enqueue(ctx, table, recordID, models.OpDelete, supabaseID.String)
}
