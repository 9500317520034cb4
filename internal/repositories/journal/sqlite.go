package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.JournalEntry) error {
	query := `INSERT INTO journal_entries
			(id, user_id, encrypted_title, encrypted_body, encrypted_mood, sync_status, supabase_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.EncryptedTitle, e.EncryptedBody, e.EncryptedMood,
		e.SyncStatus, nullable(e.SupabaseID), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.JournalEntry) error {
	query := `UPDATE journal_entries
			SET encrypted_title = ?, encrypted_body = ?, encrypted_mood = ?, sync_status = ?, updated_at = ?
			WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.EncryptedTitle, e.EncryptedBody, e.EncryptedMood, e.SyncStatus, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	query := `SELECT id, user_id, encrypted_title, encrypted_body, encrypted_mood, sync_status, supabase_id, created_at, updated_at
			FROM journal_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var e models.JournalEntry
	var supabaseID sql.NullString
	err := row.Scan(&e.ID, &e.UserID, &e.EncryptedTitle, &e.EncryptedBody, &e.EncryptedMood,
		&e.SyncStatus, &supabaseID, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	e.SupabaseID = supabaseID.String
	return &e, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	query := `SELECT id, user_id, encrypted_title, encrypted_body, encrypted_mood, sync_status, supabase_id, created_at, updated_at
			FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select journal entries: %w", err)
	}
	defer rows.Close()

	var result []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var supabaseID sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.EncryptedTitle, &e.EncryptedBody, &e.EncryptedMood,
			&e.SyncStatus, &supabaseID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.SupabaseID = supabaseID.String
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}

// MarkSynced records a successful sync: the remote id is stored and the
// record leaves the pending state.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id, supabaseID string) error {
	query := `UPDATE journal_entries SET sync_status = ?, supabase_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, models.SyncStatusSynced, supabaseID, id)
	if err != nil {
		return fmt.Errorf("failed to mark journal entry synced: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
