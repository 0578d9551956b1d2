package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// CancelGestureInput aborts an in-flight gesture.
type CancelGestureInput struct {
	DashboardID string `json:"dashboard_id"`
	PanelKey    string `json:"panel_key"`
}

type cancelService interface {
	CancelGesture(ctx context.Context, dashboardID, panelKey string) bool
}

// CancelGestureCommand wraps Service.CancelGesture.
type CancelGestureCommand struct {
	service   cancelService
	telemetry recorder
}

// NewCancelGestureCommand builds the command.
func NewCancelGestureCommand(service cancelService, telemetry Telemetry) *CancelGestureCommand {
	return &CancelGestureCommand{service: service, telemetry: newRecorder(telemetry)}
}

var _ gocommand.Commander[CancelGestureInput] = (*CancelGestureCommand)(nil)

// Execute drops the gesture state. Cancelling a panel without a gesture is not an error.
func (c *CancelGestureCommand) Execute(ctx context.Context, msg CancelGestureInput) error {
	if c.service == nil {
		return errors.New("cancel gesture command requires service")
	}
	cancelled := c.service.CancelGesture(ctx, msg.DashboardID, msg.PanelKey)
	c.telemetry.panel(ctx, "cancel", msg.DashboardID, msg.PanelKey, map[string]any{"cancelled": cancelled})
	return nil
}
