package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/journal"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

func TestJournalAdd_EncryptsAtRestAndEnqueues(t *testing.T) {
	db := setupDB(t)
	svc := NewJournalService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	id, err := svc.Add(ctx, "gratitude list", "today I am grateful for...", "hopeful")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// The stored row never carries plaintext.
	raw, err := journal.NewSQLiteRepository(db).GetByID(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, raw.EncryptedTitle, "gratitude")
	assert.NotContains(t, raw.EncryptedBody, "grateful")
	assert.Contains(t, raw.EncryptedTitle, ":")
	assert.Equal(t, models.SyncStatusPending, raw.SyncStatus)

	items, err := syncqueue.NewSQLiteRepository(db).Drainable(ctx, 50, 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, common.TableJournalEntries, items[0].TableName)
	assert.Equal(t, id, items[0].RecordID)
	assert.Equal(t, models.OpInsert, items[0].Operation)
}

func TestJournalAdd_WithoutKey_Fails(t *testing.T) {
	db := setupDB(t)
	svc := NewJournalService(db, keylessCipher(), "u1", testLogger())

	_, err := svc.Add(context.Background(), "t", "b", "")
	require.ErrorIs(t, err, common.ErrKeyNotFound)

	entries, err := journal.NewSQLiteRepository(db).ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalAdd_WriteAndEnqueueAreAtomic(t *testing.T) {
	db := setupDB(t)
	svc := NewJournalService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	// With the queue table gone the enqueue fails and the whole transaction
	// rolls back: no record without its obligation.
	_, err := db.Exec(`DROP TABLE sync_queue`)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "t", "b", "")
	require.Error(t, err)

	entries, err := journal.NewSQLiteRepository(db).ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalGet_RoundTrip(t *testing.T) {
	db := setupDB(t)
	svc := NewJournalService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	id, err := svc.Add(ctx, "step four", "searching and fearless", "calm")
	require.NoError(t, err)

	v, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "step four", v.Title)
	assert.Equal(t, "searching and fearless", v.Body)
	assert.Equal(t, "calm", v.Mood)
	assert.False(t, v.DecryptFailed)
}

func TestJournalList_FlagsCorruptEntries(t *testing.T) {
	db := setupDB(t)
	svc := NewJournalService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	goodID, err := svc.Add(ctx, "readable", "body", "")
	require.NoError(t, err)
	badID, err := svc.Add(ctx, "будет испорчено", "body", "")
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE journal_entries SET encrypted_title = 'not-a-token' WHERE id = ?`, badID)
	require.NoError(t, err)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := map[string]JournalView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.False(t, byID[goodID].DecryptFailed)
	assert.Equal(t, "readable", byID[goodID].Title)
	assert.True(t, byID[badID].DecryptFailed)
	assert.Empty(t, byID[badID].Title)
}

func TestJournalUpdate_EnqueuesUpdate(t *testing.T) {
	db := setupDB(t)
	svc := NewJournalService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	id, err := svc.Add(ctx, "v1", "body", "")
	require.NoError(t, err)
	require.NoError(t, svc.Update(ctx, id, "v2", "new body", ""))

	v, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "v2", v.Title)

	items, err := syncqueue.NewSQLiteRepository(db).Drainable(ctx, 50, 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	ops := []models.Operation{items[0].Operation, items[1].Operation}
	assert.Contains(t, ops, models.OpInsert)
	assert.Contains(t, ops, models.OpUpdate)
}

func TestJournalDelete_CapturesRemoteIDBeforeRowRemoval(t *testing.T) {
	db := setupDB(t)
	svc := NewJournalService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	id, err := svc.Add(ctx, "t", "b", "")
	require.NoError(t, err)
	require.NoError(t, journal.NewSQLiteRepository(db).MarkSynced(ctx, id, "remote-1"))

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	require.ErrorIs(t, err, common.ErrNotFound)

	items, err := syncqueue.NewSQLiteRepository(db).Drainable(ctx, 50, 3)
	require.NoError(t, err)

	var del *models.QueueEntry
	for i := range items {
		if items[i].Operation == models.OpDelete {
			del = &items[i]
		}
	}
	require.NotNil(t, del)
	assert.Equal(t, "remote-1", del.SupabaseID)
	assert.Equal(t, id, del.RecordID)
}

func TestJournalList_ScopedToUser(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	cipher := testCipher()

	mine := NewJournalService(db, cipher, "u1", testLogger())
	other := NewJournalService(db, cipher, "u2", testLogger())

	_, err := mine.Add(ctx, "mine", "b", "")
	require.NoError(t, err)
	_, err = other.Add(ctx, "theirs", "b", "")
	require.NoError(t, err)

	views, err := mine.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "mine", views[0].Title)
	assert.NotEmpty(t, views[0].ID)
}
