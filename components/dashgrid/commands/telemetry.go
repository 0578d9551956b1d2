package commands

import (
	"context"
	"maps"
)

// Telemetry allows commands to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

const eventPrefix = "dashgrid.command."

// recorder stamps command events with the dashboard and panel they touch.
// A nil sink swallows events.
type recorder struct {
	sink Telemetry
}

func newRecorder(sink Telemetry) recorder {
	return recorder{sink: sink}
}

func (r recorder) panel(ctx context.Context, name, dashboardID, panelKey string, fields map[string]any) {
	if r.sink == nil {
		return
	}
	payload := map[string]any{"dashboard_id": dashboardID}
	if panelKey != "" {
		payload["panel_key"] = panelKey
	}
	maps.Copy(payload, fields)
	r.sink.Record(ctx, eventPrefix+name, payload)
}

func (r recorder) record(ctx context.Context, name string, fields map[string]any) {
	if r.sink == nil {
		return
	}
	r.sink.Record(ctx, eventPrefix+name, fields)
}
