// Package keystore manages the single long-lived content-encryption key.
//
// The key is derived once with PBKDF2 from device-generated random material
// and a random salt, then persisted in a SecretStore (the platform's secure
// enclave / keychain facility; a file-backed implementation is provided for
// environments without one). The raw random material is never persisted and
// the key never leaves the secret store except into process memory.
package keystore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/stillwater-app/stillwater/internal/common"
)

// Secret names inside the SecretStore. Fixed logical identifiers, one key
// entry and one salt entry per installation.
const (
	secretKeyName  = "stillwater.content.key"
	secretSaltName = "stillwater.content.salt"
)

const (
	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32

	saltSize      = 16
	seedSize      = 32
	kdfIterations = 100_000
)

// SecretStore abstracts the platform's secure key-value storage.
// Get returns (nil, nil) when the named secret does not exist.
type SecretStore interface {
	Get(name string) ([]byte, error)
	Set(name string, value []byte) error
	Delete(name string) error
}

// KeyStore owns the lifecycle of the content-encryption key: created at
// onboarding (or lazily on first encrypt), destroyed on logout. At most one
// active key exists per installation.
type KeyStore struct {
	secrets SecretStore
}

func New(secrets SecretStore) *KeyStore {
	return &KeyStore{secrets: secrets}
}

// GenerateKey derives a fresh 256-bit key from secure random material and a
// fresh random salt, persists the derived key, and returns it. Any existing
// key is replaced; callers must only invoke this when no key exists or the
// old key's data has been wiped.
func (k *KeyStore) GenerateKey() ([]byte, error) {
	seed := make([]byte, seedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyStoreUnavailable, err)
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyStoreUnavailable, err)
	}

	key := pbkdf2.Key(seed, salt, kdfIterations, KeySize, sha256.New)

	// The derived key is what we keep; the seed is discarded.
	if err := k.secrets.Set(secretKeyName, []byte(hex.EncodeToString(key))); err != nil {
		return nil, fmt.Errorf("persisting key: %w", err)
	}
	if err := k.secrets.Set(secretSaltName, []byte(hex.EncodeToString(salt))); err != nil {
		return nil, fmt.Errorf("persisting salt: %w", err)
	}

	return key, nil
}

// GetKey returns the persisted key, or (nil, nil) when none exists.
// Empty stored material is treated as absent.
func (k *KeyStore) GetKey() ([]byte, error) {
	raw, err := k.secrets.Get(secretKeyName)
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	key, err := hex.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: stored key is not valid hex", common.ErrKeyStoreUnavailable)
	}
	return key, nil
}

// HasKey reports whether a non-empty key is persisted.
func (k *KeyStore) HasKey() (bool, error) {
	key, err := k.GetKey()
	if err != nil {
		return false, err
	}
	return key != nil, nil
}

// DeleteKey removes the persisted key and salt. Subsequent GetKey calls
// return (nil, nil). Used on logout and account deletion.
func (k *KeyStore) DeleteKey() error {
	if err := k.secrets.Delete(secretKeyName); err != nil {
		return fmt.Errorf("deleting key: %w", err)
	}
	if err := k.secrets.Delete(secretSaltName); err != nil {
		return fmt.Errorf("deleting salt: %w", err)
	}
	return nil
}
