package dashgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogTelemetryRecordsEventWithActor(t *testing.T) {
	var buf bytes.Buffer
	telemetry := NewSlogTelemetry(slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := ContextWithActor(context.Background(), ActorContext{ActorID: "user-1"})
	telemetry.Record(ctx, "dashgrid.panel.drag", map[string]any{"panel_key": "a", "x": 3})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dashgrid.panel.drag", entry["msg"])
	assert.Equal(t, "a", entry["panel_key"])
	assert.Equal(t, float64(3), entry["x"])
	assert.Equal(t, "user-1", entry["actor_id"])
}

func TestSlogTelemetryRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	telemetry := NewSlogTelemetry(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	telemetry.Record(context.Background(), "dashgrid.layout.resolve", nil)
	assert.Zero(t, buf.Len())
}

func TestNormalizeTelemetry(t *testing.T) {
	if _, ok := normalizeTelemetry(nil).(noopTelemetry); !ok {
		t.Fatalf("expected noop telemetry for nil")
	}
	var nilSlog *SlogTelemetry
	nilSlog.Record(context.Background(), "ignored", nil)
}
