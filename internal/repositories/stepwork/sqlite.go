package stepwork

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

// Upsert inserts or replaces an answer by id. Answers are re-saved every time
// the user edits them, so upsert semantics keep the write path simple.
func (r *SQLiteRepository) Upsert(ctx context.Context, w *models.StepWork) error {
	query := `INSERT INTO step_work
			(id, user_id, step_number, question_index, encrypted_answer, is_complete, sync_status, supabase_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				encrypted_answer = excluded.encrypted_answer,
				is_complete = excluded.is_complete,
				sync_status = excluded.sync_status,
				updated_at = excluded.updated_at`
	var supabaseID any
	if w.SupabaseID != "" {
		supabaseID = w.SupabaseID
	}
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.UserID, w.StepNumber, w.QuestionIndex, w.EncryptedAnswer,
		w.IsComplete, w.SyncStatus, supabaseID, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert step work: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.StepWork, error) {
	query := `SELECT id, user_id, step_number, question_index, encrypted_answer, is_complete, sync_status, supabase_id, created_at, updated_at
			FROM step_work WHERE id = ?`
	var w models.StepWork
	var supabaseID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.StepNumber, &w.QuestionIndex, &w.EncryptedAnswer,
		&w.IsComplete, &w.SyncStatus, &supabaseID, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get step work: %w", err)
	}
	w.SupabaseID = supabaseID.String
	return &w, nil
}

func (r *SQLiteRepository) ListByStep(ctx context.Context, userID string, stepNumber int) ([]models.StepWork, error) {
	query := `SELECT id, user_id, step_number, question_index, encrypted_answer, is_complete, sync_status, supabase_id, created_at, updated_at
			FROM step_work WHERE user_id = ? AND step_number = ? ORDER BY question_index`
	rows, err := r.db.QueryContext(ctx, query, userID, stepNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to select step work: %w", err)
	}
	defer rows.Close()

	var result []models.StepWork
	for rows.Next() {
		var w models.StepWork
		var supabaseID sql.NullString
		if err := rows.Scan(&w.ID, &w.UserID, &w.StepNumber, &w.QuestionIndex, &w.EncryptedAnswer,
			&w.IsComplete, &w.SyncStatus, &supabaseID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan step work: %w", err)
		}
		w.SupabaseID = supabaseID.String
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate step work: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM step_work WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete step work: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id, supabaseID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE step_work SET sync_status = ?, supabase_id = ? WHERE id = ?`,
		models.SyncStatusSynced, supabaseID, id)
	if err != nil {
		return fmt.Errorf("failed to mark step work synced: %w", err)
	}
	return nil
}
