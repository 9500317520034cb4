package keystore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSecretStore_SetGetDelete(t *testing.T) {
	s, err := NewFileSecretStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("k", []byte("value")))

	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	require.NoError(t, s.Delete("k"))

	v, err = s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFileSecretStore_GetAbsent_ReturnsNilNil(t *testing.T) {
	s, err := NewFileSecretStore(t.TempDir())
	require.NoError(t, err)

	v, err := s.Get("never-set")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFileSecretStore_DeleteAbsent_IsIdempotent(t *testing.T) {
	s, err := NewFileSecretStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Delete("never-set"))
}

func TestFileSecretStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "keys")

	s, err := NewFileSecretStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", []byte("v")))

	assert.DirExists(t, dir)
}

func TestFileSecretStore_WorksWithKeyStore(t *testing.T) {
	s, err := NewFileSecretStore(t.TempDir())
	require.NoError(t, err)
	k := New(s)

	generated, err := k.GenerateKey()
	require.NoError(t, err)

	got, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, generated, got)
}
