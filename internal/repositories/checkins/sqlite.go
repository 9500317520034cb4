package checkins

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

const checkinColumns = `id, user_id, check_in_type, checkin_date, encrypted_intention, encrypted_reflection,
			encrypted_mood, craving_level, sync_status, supabase_id, created_at, updated_at`

func (r *SQLiteRepository) Insert(ctx context.Context, c *models.DailyCheckin) error {
	query := `INSERT INTO daily_checkins (` + checkinColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				encrypted_intention = excluded.encrypted_intention,
				encrypted_reflection = excluded.encrypted_reflection,
				encrypted_mood = excluded.encrypted_mood,
				craving_level = excluded.craving_level,
				sync_status = excluded.sync_status,
				updated_at = excluded.updated_at`
	var supabaseID any
	if c.SupabaseID != "" {
		supabaseID = c.SupabaseID
	}
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.CheckinType, c.CheckinDate, c.EncryptedIntention, c.EncryptedReflection,
		c.EncryptedMood, c.CravingLevel, c.SyncStatus, supabaseID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert checkin: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.DailyCheckin, error) {
	var c models.DailyCheckin
	var supabaseID sql.NullString
	err := row.Scan(&c.ID, &c.UserID, &c.CheckinType, &c.CheckinDate,
		&c.EncryptedIntention, &c.EncryptedReflection, &c.EncryptedMood, &c.CravingLevel,
		&c.SyncStatus, &supabaseID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan checkin: %w", err)
	}
	c.SupabaseID = supabaseID.String
	return &c, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.DailyCheckin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+checkinColumns+` FROM daily_checkins WHERE id = ?`, id)
	return r.scanOne(row)
}

func (r *SQLiteRepository) GetByDate(ctx context.Context, userID, date string, typ models.CheckinType) (*models.DailyCheckin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+checkinColumns+` FROM daily_checkins WHERE user_id = ? AND checkin_date = ? AND check_in_type = ?`,
		userID, date, typ)
	return r.scanOne(row)
}

func (r *SQLiteRepository) ListDates(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT checkin_date FROM daily_checkins WHERE user_id = ? ORDER BY checkin_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select checkin dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan checkin date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkin dates: %w", err)
	}
	return dates, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM daily_checkins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete checkin: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id, supabaseID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE daily_checkins SET sync_status = ?, supabase_id = ? WHERE id = ?`,
		models.SyncStatusSynced, supabaseID, id)
	if err != nil {
		return fmt.Errorf("failed to mark checkin synced: %w", err)
	}
	return nil
}
