package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

func TestFavorites_AddListRemove(t *testing.T) {
	db := setupDB(t)
	svc := NewFavoriteService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	id, err := svc.Add(ctx, "meeting-42", "great sharing circle")
	require.NoError(t, err)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "meeting-42", views[0].MeetingID)
	assert.Equal(t, "great sharing circle", views[0].Note)

	// The note is never stored in the clear.
	var encNote string
	require.NoError(t, db.QueryRow(`SELECT encrypted_note FROM favorite_meetings WHERE id = ?`, id).Scan(&encNote))
	assert.NotContains(t, encNote, "sharing")

	require.NoError(t, svc.Remove(ctx, id))

	views, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)

	items, err := syncqueue.NewSQLiteRepository(db).Drainable(ctx, 50, 3)
	require.NoError(t, err)

	var ops []models.Operation
	for _, it := range items {
		ops = append(ops, it.Operation)
	}
	assert.Contains(t, ops, models.OpInsert)
	assert.Contains(t, ops, models.OpDelete)
}
