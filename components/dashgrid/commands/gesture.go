package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// BeginGestureInput starts a drag or resize on a panel.
type BeginGestureInput struct {
	DashboardID string                 `json:"dashboard_id"`
	PanelKey    string                 `json:"panel_key"`
	Kind        dashgrid.GestureKind   `json:"kind"`
	Context     dashgrid.LayoutContext `json:"context"`
}

// MoveGestureInput reports an intermediate pointer rectangle.
type MoveGestureInput struct {
	DashboardID string                 `json:"dashboard_id"`
	PanelKey    string                 `json:"panel_key"`
	Context     dashgrid.LayoutContext `json:"context"`
	Rect        dashgrid.PixelRect     `json:"rect"`
}

// EndGestureInput is the stop event of a tracked gesture.
type EndGestureInput struct {
	DashboardID string                 `json:"dashboard_id"`
	PanelKey    string                 `json:"panel_key"`
	Context     dashgrid.LayoutContext `json:"context"`
	Rect        dashgrid.PixelRect     `json:"rect"`
}

type gestureService interface {
	BeginGesture(ctx context.Context, dashboardID, panelKey string, kind dashgrid.GestureKind, lctx dashgrid.LayoutContext) (dashgrid.PixelRect, error)
	MoveGesture(ctx context.Context, dashboardID, panelKey string, lctx dashgrid.LayoutContext, rect dashgrid.PixelRect) (dashgrid.PixelRect, error)
	EndGesture(ctx context.Context, dashboardID, panelKey string, lctx dashgrid.LayoutContext, final dashgrid.PixelRect) (dashgrid.GridRect, error)
}

var errGestureServiceMissing = errors.New("gesture command requires service")

// BeginGestureCommand wraps Service.BeginGesture.
type BeginGestureCommand struct {
	service   gestureService
	telemetry recorder
}

// NewBeginGestureCommand builds the command.
func NewBeginGestureCommand(service gestureService, telemetry Telemetry) *BeginGestureCommand {
	return &BeginGestureCommand{service: service, telemetry: newRecorder(telemetry)}
}

var _ gocommand.Commander[BeginGestureInput] = (*BeginGestureCommand)(nil)

func (c *BeginGestureCommand) Execute(ctx context.Context, msg BeginGestureInput) error {
	if c.service == nil {
		return errGestureServiceMissing
	}
	start, err := c.service.BeginGesture(ctx, msg.DashboardID, msg.PanelKey, msg.Kind, msg.Context)
	if err != nil {
		return err
	}
	c.telemetry.panel(ctx, "gesture_begin", msg.DashboardID, msg.PanelKey, map[string]any{
		"kind": msg.Kind.String(),
		"left": start.Left,
		"top":  start.Top,
	})
	return nil
}

// MoveGestureCommand wraps Service.MoveGesture. Moves are frequent, so no
// telemetry is recorded for them.
type MoveGestureCommand struct {
	service gestureService
}

// NewMoveGestureCommand builds the command.
func NewMoveGestureCommand(service gestureService) *MoveGestureCommand {
	return &MoveGestureCommand{service: service}
}

var _ gocommand.Commander[MoveGestureInput] = (*MoveGestureCommand)(nil)

func (c *MoveGestureCommand) Execute(ctx context.Context, msg MoveGestureInput) error {
	if c.service == nil {
		return errGestureServiceMissing
	}
	_, err := c.service.MoveGesture(ctx, msg.DashboardID, msg.PanelKey, msg.Context, msg.Rect)
	return err
}

// EndGestureCommand wraps Service.EndGesture, the committing stop event.
type EndGestureCommand struct {
	service   gestureService
	telemetry recorder
}

// NewEndGestureCommand builds the command.
func NewEndGestureCommand(service gestureService, telemetry Telemetry) *EndGestureCommand {
	return &EndGestureCommand{service: service, telemetry: newRecorder(telemetry)}
}

var _ gocommand.Commander[EndGestureInput] = (*EndGestureCommand)(nil)

func (c *EndGestureCommand) Execute(ctx context.Context, msg EndGestureInput) error {
	if c.service == nil {
		return errGestureServiceMissing
	}
	pos, err := c.service.EndGesture(ctx, msg.DashboardID, msg.PanelKey, msg.Context, msg.Rect)
	if err != nil {
		return err
	}
	c.telemetry.panel(ctx, "gesture_end", msg.DashboardID, msg.PanelKey, map[string]any{
		"x": pos.X,
		"y": pos.Y,
		"w": pos.W,
		"h": pos.H,
	})
	return nil
}
