package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// DragStopInput is the terminal event of a drag gesture.
type DragStopInput struct {
	DashboardID string                 `json:"dashboard_id"`
	PanelKey    string                 `json:"panel_key"`
	Context     dashgrid.LayoutContext `json:"context"`
	Top         float64                `json:"top"`
	Left        float64                `json:"left"`
}

type dragService interface {
	CommitDrag(ctx context.Context, dashboardID, panelKey string, lctx dashgrid.LayoutContext, top, left float64) (dashgrid.GridRect, error)
}

// DragStopCommand wraps Service.CommitDrag.
type DragStopCommand struct {
	service   dragService
	telemetry recorder
}

// NewDragStopCommand builds the command.
func NewDragStopCommand(service dragService, telemetry Telemetry) *DragStopCommand {
	return &DragStopCommand{service: service, telemetry: newRecorder(telemetry)}
}

var _ gocommand.Commander[DragStopInput] = (*DragStopCommand)(nil)

// Execute snaps the dropped position and commits it.
func (c *DragStopCommand) Execute(ctx context.Context, msg DragStopInput) error {
	if c.service == nil {
		return errors.New("drag stop command requires service")
	}
	pos, err := c.service.CommitDrag(ctx, msg.DashboardID, msg.PanelKey, msg.Context, msg.Top, msg.Left)
	if err != nil {
		return err
	}
	c.telemetry.panel(ctx, "drag_stop", msg.DashboardID, msg.PanelKey, map[string]any{"x": pos.X, "y": pos.Y})
	return nil
}
