package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, dashgrid.DefaultSettings(), cfg.Grid)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashgrid.yaml")
	body := `
server:
  addr: ":9090"
grid:
  columns: 12
  margin:
    x: 4
    y: 6
  breakpoints:
    hysteresis: 16
dashboards:
  - dashboards/ops.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("DASHGRID_GRID_ROW_HEIGHT", "24")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 12, cfg.Grid.Columns)
	assert.Equal(t, dashgrid.Pair{X: 4, Y: 6}, cfg.Grid.Margin)
	assert.Equal(t, 24.0, cfg.Grid.RowHeight)
	assert.Equal(t, 16.0, cfg.Grid.Breakpoints.Hysteresis)
	assert.Equal(t, float64(dashgrid.DefaultBreakpointMD), cfg.Grid.Breakpoints.MD)
	assert.Equal(t, []string{"dashboards/ops.yaml"}, cfg.Dashboards)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  columns: -1\nlogging:\n  format: xml\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns must be positive")
	assert.Contains(t, err.Error(), "logging.format")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoggingConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: "warn", Format: "text"}.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}
