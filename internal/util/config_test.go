package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		t.Setenv("API_KEY", "")
		t.Setenv("SECRET_KEY", "")
		t.Setenv("PORT", "")

		cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(DefaultConfig(), *cfg))
	})

	t.Run("file values and env overrides", func(t *testing.T) {
		t.Setenv("API_KEY", "env-key")
		t.Setenv("SECRET_KEY", "env-secret")
		t.Setenv("PORT", "8081")

		path := writeConfig(t, `
port: 9000
providers: [yahoo]
upstreamTimeout: 5s
alpaca:
  apiKey: file-key
  feed: sip
cache:
  driver: sqlite3
  dsn: /tmp/bars.db
`)
		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)

		require.Equal(
			t,
			"",
			cmp.Diff(
				Config{
					Port:      8081,
					Providers: []string{"yahoo"},
					Timeout:   5 * time.Second,
					Alpaca: AlpacaConfig{
						ApiKey:    "env-key",
						ApiSecret: "env-secret",
						Feed:      "sip",
					},
					Cache: CacheConfig{
						Driver: "sqlite3",
						Dsn:    "/tmp/bars.db",
					},
				},
				*cfg,
			),
		)
		require.True(t, cfg.Alpaca.HasCredentials())
		require.True(t, cfg.Cache.Enabled())
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		t.Setenv("PORT", "")
		path := writeConfig(t, "providers: [bloomberg]\n")
		_, err := LoadConfigFile(path)
		require.ErrorContains(t, err, "bloomberg")
	})

	t.Run("cache driver needs a dsn", func(t *testing.T) {
		t.Setenv("PORT", "")
		path := writeConfig(t, "cache:\n  driver: postgres\n")
		_, err := LoadConfigFile(path)
		require.Error(t, err)
	})

	t.Run("zero timeout", func(t *testing.T) {
		t.Setenv("PORT", "")
		path := writeConfig(t, "upstreamTimeout: 0s\n")
		_, err := LoadConfigFile(path)
		require.ErrorContains(t, err, "upstreamTimeout")
	})

	t.Run("bad PORT", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	require.Equal(t, NewDate(2025, 1, 1), d)

	_, err = ParseDate("01/01/2025")
	require.Error(t, err)
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 3, 4, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	require.Equal(t, NewDate(2025, 3, 5), Today(now))
}

func TestLoadConfigFile_shipped(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfigFile("../../config.yaml")
	require.NoError(t, err)
	require.Equal(t, "sqlite3", cfg.Cache.Driver)
	require.True(t, strings.HasPrefix(cfg.Cache.Dsn, "/tmp/"), cfg.Cache.Dsn)
}
