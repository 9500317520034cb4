package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stillwater-app/stillwater/internal/common"
)

// FileSecretStore is a SecretStore backed by one file per secret inside a
// private directory (0700 dir, 0600 files). It stands in for a platform
// keychain on hosts that lack one; I/O failures surface as
// common.ErrKeyStoreUnavailable because encryption is meaningless without
// reachable key material.
type FileSecretStore struct {
	dir string
}

func NewFileSecretStore(dir string) (*FileSecretStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyStoreUnavailable, err)
	}
	return &FileSecretStore{dir: dir}, nil
}

func (s *FileSecretStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileSecretStore) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyStoreUnavailable, err)
	}
	return data, nil
}

func (s *FileSecretStore) Set(name string, value []byte) error {
	if err := os.WriteFile(s.path(name), value, 0o600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyStoreUnavailable, err)
	}
	return nil
}

func (s *FileSecretStore) Delete(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", common.ErrKeyStoreUnavailable, err)
	}
	return nil
}
