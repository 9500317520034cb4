// Package metadata stores small key/value session material in the local
// store: remote user id, access token, installation-local user id. Key
// material itself lives in the keystore, never here.
package metadata

import "context"

type Repository interface {
	// Get returns the value for key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear wipes all metadata. Used on logout.
	Clear(ctx context.Context) error
}
