package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwater-app/stillwater/internal/keystore"
)

type memSecrets struct {
	values map[string][]byte
}

func newMemSecrets() *memSecrets { return &memSecrets{values: map[string][]byte{}} }

func (m *memSecrets) Get(name string) ([]byte, error)        { return m.values[name], nil }
func (m *memSecrets) Set(name string, value []byte) error    { m.values[name] = value; return nil }
func (m *memSecrets) Delete(name string) error               { delete(m.values, name); return nil }

func newSession(t *testing.T) (SessionService, *keystore.KeyStore, *memSecrets) {
	t.Helper()
	db := setupDB(t)
	secrets := newMemSecrets()
	keys := keystore.New(secrets)
	return NewSessionService(db, keys, testLogger()), keys, secrets
}

func TestEnsureKey_CreatesOnceAndKeeps(t *testing.T) {
	s, keys, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureKey(ctx))
	first, err := keys.GetKey()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, s.EnsureKey(ctx))
	second, err := keys.GetKey()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLogin_CachesIdentityAndToken(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "remote-user", "jwt-token"))

	userID, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "remote-user", userID)

	token, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestAccessToken_LoggedOut_IsEmpty(t *testing.T) {
	s, _, _ := newSession(t)

	token, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLocalUserID_StableAcrossCalls(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()

	first, err := s.LocalUserID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := s.LocalUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLogout_WipesContentSessionAndKey(t *testing.T) {
	db := setupDB(t)
	keys := keystore.New(newMemSecrets())
	s := NewSessionService(db, keys, testLogger())
	ctx := context.Background()

	require.NoError(t, s.EnsureKey(ctx))
	require.NoError(t, s.Login(ctx, "remote-user", "jwt-token"))

	journalSvc := NewJournalService(db, testCipher(), "u1", testLogger())
	_, err := journalSvc.Add(ctx, "secret", "content", "")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))

	for _, table := range []string{"journal_entries", "step_work", "daily_checkins",
		"favorite_meetings", "reading_reflections", "sync_queue", "metadata"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "table %s should be empty", table)
	}

	ok, err := keys.HasKey()
	require.NoError(t, err)
	assert.False(t, ok)

	token, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
