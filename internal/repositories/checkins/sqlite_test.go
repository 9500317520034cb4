package checkins

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE daily_checkins (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  check_in_type TEXT NOT NULL,
  checkin_date TEXT NOT NULL,
  encrypted_intention TEXT NOT NULL DEFAULT '',
  encrypted_reflection TEXT NOT NULL DEFAULT '',
  encrypted_mood TEXT NOT NULL DEFAULT '',
  craving_level INTEGER NOT NULL DEFAULT 0,
  sync_status TEXT NOT NULL DEFAULT 'pending',
  supabase_id TEXT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func sample(id, date string, typ models.CheckinType) *models.DailyCheckin {
	return &models.DailyCheckin{
		ID:                 id,
		UserID:             "u1",
		CheckinType:        typ,
		CheckinDate:        date,
		EncryptedIntention: "aa:aW50ZW50",
		EncryptedMood:      "bb:bW9vZA==",
		CravingLevel:       3,
		SyncStatus:         models.SyncStatusPending,
		CreatedAt:          date + "T08:00:00Z",
		UpdatedAt:          date + "T08:00:00Z",
	}
}

func TestInsertAndGetByDate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sample("c1", "2026-03-01", models.CheckinMorning)))

	got, err := r.GetByDate(ctx, "u1", "2026-03-01", models.CheckinMorning)
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, 3, got.CravingLevel)
	assert.Equal(t, "aa:aW50ZW50", got.EncryptedIntention)
}

func TestGetByDate_TypeIsPartOfKey(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sample("c1", "2026-03-01", models.CheckinMorning)))

	_, err := r.GetByDate(ctx, "u1", "2026-03-01", models.CheckinEvening)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestInsert_SameIDReplaces(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	c := sample("c1", "2026-03-01", models.CheckinMorning)
	require.NoError(t, r.Insert(ctx, c))

	c.EncryptedIntention = "cc:cmV2aXNlZA=="
	c.CravingLevel = 7
	require.NoError(t, r.Insert(ctx, c))

	got, err := r.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "cc:cmV2aXNlZA==", got.EncryptedIntention)
	assert.Equal(t, 7, got.CravingLevel)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM daily_checkins`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestListDates_DistinctNewestFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sample("c1", "2026-03-01", models.CheckinMorning)))
	require.NoError(t, r.Insert(ctx, sample("c2", "2026-03-01", models.CheckinEvening)))
	require.NoError(t, r.Insert(ctx, sample("c3", "2026-03-02", models.CheckinMorning)))

	dates, err := r.ListDates(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-02", "2026-03-01"}, dates)
}

func TestMarkSynced(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sample("c1", "2026-03-01", models.CheckinMorning)))
	require.NoError(t, r.MarkSynced(ctx, "c1", "remote-1"))

	got, err := r.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
	assert.Equal(t, "remote-1", got.SupabaseID)
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sample("c1", "2026-03-01", models.CheckinMorning)))
	require.NoError(t, r.Delete(ctx, "c1"))

	_, err := r.GetByID(ctx, "c1")
	require.ErrorIs(t, err, common.ErrNotFound)
}
