package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, DefaultPrefsDBPath, cfg.PrefsDBPath)
	assert.False(t, cfg.Watch)
	assert.Equal(t, DefaultObservabilityListenAddress, cfg.Observability.ListenAddress)
	assert.True(t, cfg.Observability.EnableMetrics)
	assert.True(t, cfg.Observability.EnableHealthz)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
listenAddress: 127.0.0.1:9000
catalogPath: /etc/hexageeky/catalog.yaml
prefsDBPath: /var/lib/hexageeky/prefs.db
watch: true
observability:
  listenAddress: 127.0.0.1:9100
  enableMetrics: false
  enableHealthz: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
	assert.Equal(t, "/etc/hexageeky/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "/var/lib/hexageeky/prefs.db", cfg.PrefsDBPath)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "127.0.0.1:9100", cfg.Observability.ListenAddress)
	assert.False(t, cfg.Observability.EnableMetrics)
	assert.True(t, cfg.Observability.EnableHealthz)
}

func TestLoadConfig_WatchRequiresCatalogPath(t *testing.T) {
	path := writeConfigFile(t, "watch: true\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch requires catalogPath")
}

func TestLoadConfig_BlankListenAddress(t *testing.T) {
	path := writeConfigFile(t, `listenAddress: "  "`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listenAddress must not be blank")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "listenAddress: [")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
