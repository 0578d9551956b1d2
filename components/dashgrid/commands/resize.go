package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// ResizeStopInput is the terminal event of a resize gesture.
type ResizeStopInput struct {
	DashboardID string                 `json:"dashboard_id"`
	PanelKey    string                 `json:"panel_key"`
	Context     dashgrid.LayoutContext `json:"context"`
	Width       float64                `json:"width"`
	Height      float64                `json:"height"`
}

type resizeService interface {
	CommitResize(ctx context.Context, dashboardID, panelKey string, lctx dashgrid.LayoutContext, width, height float64) (dashgrid.GridRect, error)
}

// ResizeStopCommand wraps Service.CommitResize.
type ResizeStopCommand struct {
	service   resizeService
	telemetry recorder
}

// NewResizeStopCommand builds the command.
func NewResizeStopCommand(service resizeService, telemetry Telemetry) *ResizeStopCommand {
	return &ResizeStopCommand{service: service, telemetry: newRecorder(telemetry)}
}

var _ gocommand.Commander[ResizeStopInput] = (*ResizeStopCommand)(nil)

// Execute snaps the final size and commits it.
func (c *ResizeStopCommand) Execute(ctx context.Context, msg ResizeStopInput) error {
	if c.service == nil {
		return errors.New("resize stop command requires service")
	}
	pos, err := c.service.CommitResize(ctx, msg.DashboardID, msg.PanelKey, msg.Context, msg.Width, msg.Height)
	if err != nil {
		return err
	}
	c.telemetry.panel(ctx, "resize_stop", msg.DashboardID, msg.PanelKey, map[string]any{"w": pos.W, "h": pos.H})
	return nil
}
