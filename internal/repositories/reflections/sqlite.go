package reflections

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

func (r *SQLiteRepository) Upsert(ctx context.Context, x *models.ReadingReflection) error {
	query := `INSERT INTO reading_reflections
			(id, user_id, reading_date, encrypted_text, sync_status, supabase_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				encrypted_text = excluded.encrypted_text,
				sync_status = excluded.sync_status,
				updated_at = excluded.updated_at`
	var supabaseID any
	if x.SupabaseID != "" {
		supabaseID = x.SupabaseID
	}
	_, err := r.db.ExecContext(ctx, query,
		x.ID, x.UserID, x.ReadingDate, x.EncryptedText, x.SyncStatus, supabaseID, x.CreatedAt, x.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert reading reflection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.ReadingReflection, error) {
	query := `SELECT id, user_id, reading_date, encrypted_text, sync_status, supabase_id, created_at, updated_at
			FROM reading_reflections WHERE id = ?`
	var x models.ReadingReflection
	var supabaseID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&x.ID, &x.UserID, &x.ReadingDate, &x.EncryptedText, &x.SyncStatus, &supabaseID, &x.CreatedAt, &x.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading reflection: %w", err)
	}
	x.SupabaseID = supabaseID.String
	return &x, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.ReadingReflection, error) {
	query := `SELECT id, user_id, reading_date, encrypted_text, sync_status, supabase_id, created_at, updated_at
			FROM reading_reflections WHERE user_id = ? ORDER BY reading_date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select reading reflections: %w", err)
	}
	defer rows.Close()

	var result []models.ReadingReflection
	for rows.Next() {
		var x models.ReadingReflection
		var supabaseID sql.NullString
		if err := rows.Scan(&x.ID, &x.UserID, &x.ReadingDate, &x.EncryptedText,
			&x.SyncStatus, &supabaseID, &x.CreatedAt, &x.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reading reflection: %w", err)
		}
		x.SupabaseID = supabaseID.String
		result = append(result, x)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reading reflections: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reading_reflections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reading reflection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id, supabaseID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reading_reflections SET sync_status = ?, supabase_id = ? WHERE id = ?`,
		models.SyncStatusSynced, supabaseID, id)
	if err != nil {
		return fmt.Errorf("failed to mark reading reflection synced: %w", err)
	}
	return nil
}
