package syncqueue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, e *models.QueueEntry) error {
	query := `INSERT INTO sync_queue
			(id, table_name, record_id, operation, supabase_id, retry_count, last_error, failed_at, created_at)
			VALUES (?, ?, ?, ?, ?, 0, NULL, NULL, ?)
			ON CONFLICT(table_name, record_id, operation) DO UPDATE SET
				supabase_id = excluded.supabase_id,
				retry_count = 0,
				last_error = NULL,
				failed_at = NULL,
				created_at = excluded.created_at`
	var supabaseID any
	if e.SupabaseID != "" {
		supabaseID = e.SupabaseID
	}
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TableName, e.RecordID, e.Operation, supabaseID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue sync operation: %w", err)
	}
	return nil
}

const queueColumns = `id, table_name, record_id, operation, supabase_id, retry_count, last_error, failed_at, created_at`

func scanEntries(rows *sql.Rows) ([]models.QueueEntry, error) {
	defer rows.Close()

	var result []models.QueueEntry
	for rows.Next() {
		var e models.QueueEntry
		var supabaseID, lastError, failedAt sql.NullString
		if err := rows.Scan(&e.ID, &e.TableName, &e.RecordID, &e.Operation,
			&supabaseID, &e.RetryCount, &lastError, &failedAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}
		e.SupabaseID = supabaseID.String
		e.LastError = lastError.String
		e.FailedAt = failedAt.String
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queue entries: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Drainable(ctx context.Context, limit, maxRetries int) ([]models.QueueEntry, error) {
	query := `SELECT ` + queueColumns + ` FROM sync_queue
			WHERE retry_count < ? AND failed_at IS NULL
			ORDER BY created_at ASC
			LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select queue entries: %w", err)
	}
	return scanEntries(rows)
}

func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RecordFailure(ctx context.Context, id, lastError string, maxRetries int, now string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT retry_count FROM sync_queue WHERE id = ?`, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, common.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read retry count: %w", err)
	}

	count++
	var failedAt any
	if count >= maxRetries {
		failedAt = now
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE sync_queue SET retry_count = ?, last_error = ?, failed_at = ? WHERE id = ?`,
		count, lastError, failedAt, id)
	if err != nil {
		return 0, fmt.Errorf("failed to record queue failure: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepository) FailedEntries(ctx context.Context) ([]models.QueueEntry, error) {
	query := `SELECT ` + queueColumns + ` FROM sync_queue WHERE failed_at IS NOT NULL ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select failed queue entries: %w", err)
	}
	return scanEntries(rows)
}

func (r *SQLiteRepository) CountPending(ctx context.Context, maxRetries int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_queue WHERE retry_count < ? AND failed_at IS NULL`, maxRetries).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending queue entries: %w", err)
	}
	return n, nil
}
