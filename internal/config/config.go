// Package config loads runtime settings for the Stillwater client.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: location of the local SQLite file.
//   - KeyStoreDir: directory backing the secure secret store.
//   - RemoteBaseURL / RemoteAPIKey: the cloud store endpoint and project key.
//   - SyncBatchSize: max queue entries drained per sync cycle.
//   - SyncBaseBackoff: delay before the first retry of a failed item.
//   - RemoteCallTimeout: per-call bound on remote requests.
type Config struct {
	DatabasePath      string
	KeyStoreDir       string
	RemoteBaseURL     string
	RemoteAPIKey      string
	SyncBatchSize     int
	SyncBaseBackoff   time.Duration
	RemoteCallTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults rooted in the user's home
// directory.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".stillwater")

	c.DatabasePath = filepath.Join(dataDir, "stillwater.db")
	c.KeyStoreDir = filepath.Join(dataDir, "keys")
	c.RemoteBaseURL = ""
	c.RemoteAPIKey = ""
	c.SyncBatchSize = 50
	c.SyncBaseBackoff = time.Second
	c.RemoteCallTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
