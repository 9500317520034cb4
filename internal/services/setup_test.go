package services

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/stillwater-app/stillwater/internal/cryptox"
	"github.com/stillwater-app/stillwater/internal/logging"
)

// setupDB creates an in-memory store with the full local schema.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE journal_entries (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  encrypted_title TEXT NOT NULL DEFAULT '',
  encrypted_body TEXT NOT NULL DEFAULT '',
  encrypted_mood TEXT NOT NULL DEFAULT '',
  sync_status TEXT NOT NULL DEFAULT 'pending',
  supabase_id TEXT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE step_work (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  step_number INTEGER NOT NULL,
  question_index INTEGER NOT NULL,
  encrypted_answer TEXT NOT NULL DEFAULT '',
  is_complete INTEGER NOT NULL DEFAULT 0,
  sync_status TEXT NOT NULL DEFAULT 'pending',
  supabase_id TEXT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
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
);
CREATE TABLE favorite_meetings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  meeting_id TEXT NOT NULL,
  encrypted_note TEXT NOT NULL DEFAULT '',
  sync_status TEXT NOT NULL DEFAULT 'pending',
  supabase_id TEXT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE reading_reflections (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  reading_date TEXT NOT NULL,
  encrypted_text TEXT NOT NULL DEFAULT '',
  sync_status TEXT NOT NULL DEFAULT 'pending',
  supabase_id TEXT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE sync_queue (
  id TEXT PRIMARY KEY,
  table_name TEXT NOT NULL,
  record_id TEXT NOT NULL,
  operation TEXT NOT NULL,
  supabase_id TEXT NULL,
  retry_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT NULL,
  failed_at TEXT NULL,
  created_at TEXT NOT NULL,
  UNIQUE (table_name, record_id, operation)
);
CREATE TABLE metadata (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

type fakeKeys struct {
	key []byte
}

func (f *fakeKeys) GetKey() ([]byte, error) { return f.key, nil }

func testCipher() *cryptox.Cipher {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return cryptox.New(&fakeKeys{key: key})
}

// keylessCipher mimics an installation whose key was destroyed.
func keylessCipher() *cryptox.Cipher {
	return cryptox.New(&fakeKeys{})
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
