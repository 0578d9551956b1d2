package usersink

import (
	"context"
	"time"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// DefaultChannel tags activity records written by dashgrid.
const DefaultChannel = "dashgrid"

// ActivitySink is the write side of the go-users activity log.
type ActivitySink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook records committed panel changes in the go-users activity log. It is a
// dashgrid.RefreshHook and is meant to be combined with others through
// dashgrid.RefreshHooks.
type Hook struct {
	Sink    ActivitySink
	Channel string
	Now     func() time.Time
}

var _ dashgrid.RefreshHook = Hook{}

// PanelUpdated maps the event and the actor on ctx onto an activity record.
// Events without a reason are skipped.
func (h Hook) PanelUpdated(ctx context.Context, event dashgrid.PanelEvent) error {
	if h.Sink == nil || event.Reason == "" {
		return nil
	}
	return h.Sink.Log(ctx, h.record(ctx, event))
}

func (h Hook) record(ctx context.Context, event dashgrid.PanelEvent) types.ActivityRecord {
	actor := dashgrid.ActorFromContext(ctx)
	channel := h.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	data := map[string]any{"dashboard_id": event.DashboardID}
	record := types.ActivityRecord{
		Verb:       event.Reason,
		ObjectType: "panel",
		ObjectID:   event.PanelKey,
		Channel:    channel,
		OccurredAt: now().UTC(),
		Data:       data,
	}
	if event.PanelKey == "" {
		record.ObjectType = "dashboard"
		record.ObjectID = event.DashboardID
	} else {
		data["x"], data["y"] = event.GridPos.X, event.GridPos.Y
		data["w"], data["h"] = event.GridPos.W, event.GridPos.H
	}

	if id, ok := parseID(actor.ActorID); ok {
		record.ActorID = id
		record.UserID = id
	} else if actor.ActorID != "" {
		data["actor"] = actor.ActorID
	}
	if id, ok := parseID(actor.TenantID); ok {
		record.TenantID = id
	} else if actor.TenantID != "" {
		data["tenant"] = actor.TenantID
	}
	return record
}

func parseID(raw string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
