package favorites

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

func (r *SQLiteRepository) Insert(ctx context.Context, f *models.FavoriteMeeting) error {
	query := `INSERT INTO favorite_meetings
			(id, user_id, meeting_id, encrypted_note, sync_status, supabase_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var supabaseID any
	if f.SupabaseID != "" {
		supabaseID = f.SupabaseID
	}
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.UserID, f.MeetingID, f.EncryptedNote, f.SyncStatus, supabaseID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert favorite meeting: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.FavoriteMeeting, error) {
	query := `SELECT id, user_id, meeting_id, encrypted_note, sync_status, supabase_id, created_at, updated_at
			FROM favorite_meetings WHERE id = ?`
	var f models.FavoriteMeeting
	var supabaseID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.UserID, &f.MeetingID, &f.EncryptedNote, &f.SyncStatus, &supabaseID, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite meeting: %w", err)
	}
	f.SupabaseID = supabaseID.String
	return &f, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.FavoriteMeeting, error) {
	query := `SELECT id, user_id, meeting_id, encrypted_note, sync_status, supabase_id, created_at, updated_at
			FROM favorite_meetings WHERE user_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorite meetings: %w", err)
	}
	defer rows.Close()

	var result []models.FavoriteMeeting
	for rows.Next() {
		var f models.FavoriteMeeting
		var supabaseID sql.NullString
		if err := rows.Scan(&f.ID, &f.UserID, &f.MeetingID, &f.EncryptedNote,
			&f.SyncStatus, &supabaseID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite meeting: %w", err)
		}
		f.SupabaseID = supabaseID.String
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite meetings: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorite_meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite meeting: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id, supabaseID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE favorite_meetings SET sync_status = ?, supabase_id = ? WHERE id = ?`,
		models.SyncStatusSynced, supabaseID, id)
	if err != nil {
		return fmt.Errorf("failed to mark favorite meeting synced: %w", err)
	}
	return nil
}
