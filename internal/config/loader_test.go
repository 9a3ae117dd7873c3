package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 80, cfg.Workers)
	require.Equal(t, 12.0, cfg.ThresholdMs)
	require.Equal(t, 443, cfg.Probe.Port)
	require.Equal(t, 4*time.Second, cfg.Probe.Timeout)
	require.Equal(t, 5*time.Second, cfg.Geo.Timeout)
	require.Empty(t, cfg.DB.DSN)
	require.Empty(t, cfg.KafkaOut.Brokers)
	require.False(t, cfg.GeoCache.Enable)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coloscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workers: 16
threshold_ms: 8.5
probe:
  port: 8443
report:
  json: /tmp/out.json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Workers)
	require.Equal(t, 8.5, cfg.ThresholdMs)
	require.Equal(t, 8443, cfg.Probe.Port)
	require.Equal(t, "/tmp/out.json", cfg.Report.JSON)
	// Untouched keys keep their defaults.
	require.Equal(t, "results/latency_results.html", cfg.Report.HTML)
}
