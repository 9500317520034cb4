package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		check       func(t *testing.T, c *Config)
	}{
		{
			name: "overrides provided fields",
			args: []string{"cmd", "-d", "/tmp/app.db", "-r", "https://proj.supabase.co", "-b", "10"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "/tmp/app.db", c.DatabasePath)
				assert.Equal(t, "https://proj.supabase.co", c.RemoteBaseURL)
				assert.Equal(t, 10, c.SyncBatchSize)
			},
		},
		{
			name: "keeps defaults when absent",
			args: []string{"cmd"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "default.db", c.DatabasePath)
				assert.Equal(t, 50, c.SyncBatchSize)
			},
		},
		{
			name:        "invalid batch size panics",
			args:        []string{"cmd", "-b", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{DatabasePath: "default.db", SyncBatchSize: 50}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			tt.check(t, cfg)
		})
	}
}
