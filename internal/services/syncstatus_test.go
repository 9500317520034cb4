package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
	"github.com/stillwater-app/stillwater/internal/syncx"
)

func TestSyncStatus_CountsPendingAndListsFailed(t *testing.T) {
	db := setupDB(t)
	svc := NewSyncStatusService(db)
	ctx := context.Background()

	s, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, s.Pending)
	assert.Empty(t, s.Failed)

	repo := syncqueue.NewSQLiteRepository(db)
	require.NoError(t, repo.Enqueue(ctx, &models.QueueEntry{
		ID: "q1", TableName: "journal_entries", RecordID: "r1",
		Operation: models.OpInsert, CreatedAt: "2026-01-01T00:00:00Z",
	}))
	require.NoError(t, repo.Enqueue(ctx, &models.QueueEntry{
		ID: "q2", TableName: "journal_entries", RecordID: "r2",
		Operation: models.OpInsert, CreatedAt: "2026-01-02T00:00:00Z",
	}))

	for i := 0; i < syncx.MaxRetryCount; i++ {
		_, err := repo.RecordFailure(ctx, "q2", "backend down", syncx.MaxRetryCount, "2026-01-03T00:00:00Z")
		require.NoError(t, err)
	}

	s, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Pending)
	require.Len(t, s.Failed, 1)
	assert.Equal(t, "r2", s.Failed[0].RecordID)
	assert.Equal(t, "backend down", s.Failed[0].LastError)
	assert.True(t, s.Failed[0].PermanentlyFailed())
}
