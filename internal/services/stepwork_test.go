package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwater-app/stillwater/internal/common"
)

func TestSaveAnswer_AndListStep(t *testing.T) {
	db := setupDB(t)
	svc := NewStepWorkService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	require.NoError(t, svc.SaveAnswer(ctx, 4, 1, "resentment inventory", false))
	require.NoError(t, svc.SaveAnswer(ctx, 4, 2, "fear inventory", true))

	views, err := svc.ListStep(ctx, 4)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "resentment inventory", views[0].Answer)
	assert.False(t, views[0].IsComplete)
	assert.Equal(t, "fear inventory", views[1].Answer)
	assert.True(t, views[1].IsComplete)
}

func TestSaveAnswer_RejectsStepOutOfRange(t *testing.T) {
	db := setupDB(t)
	svc := NewStepWorkService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	require.Error(t, svc.SaveAnswer(ctx, 0, 1, "x", false))
	require.Error(t, svc.SaveAnswer(ctx, 13, 1, "x", false))
}

func TestSaveAnswer_EditingKeepsIdentity(t *testing.T) {
	db := setupDB(t)
	svc := NewStepWorkService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	require.NoError(t, svc.SaveAnswer(ctx, 1, 1, "first draft", false))

	before, err := svc.ListStep(ctx, 1)
	require.NoError(t, err)
	require.Len(t, before, 1)

	require.NoError(t, svc.SaveAnswer(ctx, 1, 1, "final answer", true))

	after, err := svc.ListStep(ctx, 1)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, "final answer", after[0].Answer)
	assert.True(t, after[0].IsComplete)
}

func TestListStep_KeyLoss_PropagatesKeyNotFound(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	withKey := NewStepWorkService(db, testCipher(), "u1", testLogger())
	require.NoError(t, withKey.SaveAnswer(ctx, 2, 1, "answer", false))

	withoutKey := NewStepWorkService(db, keylessCipher(), "u1", testLogger())
	_, err := withoutKey.ListStep(ctx, 2)
	require.ErrorIs(t, err, common.ErrKeyNotFound)
}

func TestListStep_CorruptAnswerIsFlagged(t *testing.T) {
	db := setupDB(t)
	svc := NewStepWorkService(db, testCipher(), "u1", testLogger())
	ctx := context.Background()

	require.NoError(t, svc.SaveAnswer(ctx, 3, 1, "answer", false))

	_, err := db.Exec(`UPDATE step_work SET encrypted_answer = 'broken-token'`)
	require.NoError(t, err)

	views, err := svc.ListStep(ctx, 3)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].DecryptFailed)
	assert.Empty(t, views[0].Answer)
}
