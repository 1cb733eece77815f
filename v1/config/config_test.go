package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDashboard, cfg.Dashboard)
	assert.Equal(t, DefaultEvents, cfg.Events)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
dashboard:
  lowStockThreshold: 25
events:
  streamName: custom-stream
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(25), cfg.Dashboard.LowStockThreshold)
	assert.Equal(t, int64(1000), cfg.Dashboard.ReferenceQuantity)
	assert.Equal(t, 5, cfg.Dashboard.RecentShipmentsLimit)
	assert.Equal(t, "custom-stream", cfg.Events.StreamName)
	assert.Equal(t, "logistics-cache", cfg.Events.ConsumerGroup)
}

func TestLoad_InvalidYAMLFallsBack(t *testing.T) {
	path := writeConfig(t, "dashboard: [not, a, map")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultDashboard, cfg.Dashboard)
}
