package dashgrid

import (
	"context"
	"log/slog"
)

// Telemetry records layout events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// SlogTelemetry writes telemetry events as structured log records.
type SlogTelemetry struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewSlogTelemetry wraps a logger; a nil logger uses slog.Default.
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTelemetry{Logger: logger, Level: slog.LevelInfo}
}

// Record logs the event with its payload as attributes. Actor identifiers from
// the context are attached when present.
func (t *SlogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	if t == nil || t.Logger == nil {
		return
	}
	attrs := make([]slog.Attr, 0, len(payload)+1)
	for key, value := range payload {
		attrs = append(attrs, slog.Any(key, value))
	}
	if actor := ActorFromContext(ctx); actor.ActorID != "" {
		attrs = append(attrs, slog.String("actor_id", actor.ActorID))
	}
	t.Logger.LogAttrs(ctx, t.Level, event, attrs...)
}
