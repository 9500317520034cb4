package config

import (
	"encoding/json"
	"os"

	"github.com/stillwater-app/stillwater/internal/flagx"
	"github.com/stillwater-app/stillwater/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be given either as strings like "30s" or as
// integer nanoseconds.
type JsonConfig struct {
	DatabasePath      string         `json:"database_path"`
	KeyStoreDir       string         `json:"key_store_dir"`
	RemoteBaseURL     string         `json:"remote_base_url"`
	RemoteAPIKey      string         `json:"remote_api_key"`
	SyncBatchSize     int            `json:"sync_batch_size"`
	SyncBaseBackoff   timex.Duration `json:"sync_base_backoff"`
	RemoteCallTimeout timex.Duration `json:"remote_call_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file named by the
// -c/-config flags. Absent file path means no JSON is loaded. Read or parse
// errors panic; intended usage is defaults -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyStoreDir != "" {
		cfg.KeyStoreDir = jc.KeyStoreDir
	}
	if jc.RemoteBaseURL != "" {
		cfg.RemoteBaseURL = jc.RemoteBaseURL
	}
	if jc.RemoteAPIKey != "" {
		cfg.RemoteAPIKey = jc.RemoteAPIKey
	}
	if jc.SyncBatchSize > 0 {
		cfg.SyncBatchSize = jc.SyncBatchSize
	}
	if jc.SyncBaseBackoff.Duration > 0 {
		cfg.SyncBaseBackoff = jc.SyncBaseBackoff.Duration
	}
	if jc.RemoteCallTimeout.Duration > 0 {
		cfg.RemoteCallTimeout = jc.RemoteCallTimeout.Duration
	}
}
