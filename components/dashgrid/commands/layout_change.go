package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// LayoutChangeInput carries the positions resolved by the host grid.
type LayoutChangeInput struct {
	DashboardID string                `json:"dashboard_id"`
	Items       []dashgrid.LayoutItem `json:"items"`
}

type layoutChangeService interface {
	ApplyLayoutChange(ctx context.Context, dashboardID string, items []dashgrid.LayoutItem) error
}

// LayoutChangeCommand wraps Service.ApplyLayoutChange.
type LayoutChangeCommand struct {
	service   layoutChangeService
	telemetry recorder
}

// NewLayoutChangeCommand builds the command.
func NewLayoutChangeCommand(service layoutChangeService, telemetry Telemetry) *LayoutChangeCommand {
	return &LayoutChangeCommand{service: service, telemetry: newRecorder(telemetry)}
}

var _ gocommand.Commander[LayoutChangeInput] = (*LayoutChangeCommand)(nil)

// Execute stores the reported positions.
func (c *LayoutChangeCommand) Execute(ctx context.Context, msg LayoutChangeInput) error {
	if c.service == nil {
		return errors.New("layout change command requires service")
	}
	if err := c.service.ApplyLayoutChange(ctx, msg.DashboardID, msg.Items); err != nil {
		return err
	}
	c.telemetry.panel(ctx, "layout_change", msg.DashboardID, "", map[string]any{"count": len(msg.Items)})
	return nil
}
