// Package common defines shared constants and sentinel errors used across
// Stillwater components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Cipher / key lifecycle errors.
	ErrKeyNotFound      = errors.New("encryption key not found")
	ErrInvalidFormat    = errors.New("invalid encrypted token format")
	ErrDecryptionFailed = errors.New("decryption failed")

	// Key store I/O failures are fatal for the calling operation.
	ErrKeyStoreUnavailable = errors.New("secure key store unavailable")

	// Sync errors.
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrRemoteRejected = errors.New("remote store rejected operation")
	ErrQueueExhausted = errors.New("retry ceiling reached")

	// Session errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("session token expired")
)
