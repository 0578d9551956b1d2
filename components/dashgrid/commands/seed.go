package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// SeedDashboardsInput lists dashboard documents to import.
type SeedDashboardsInput struct {
	Paths []string
}

// SeedDashboardsCommand imports dashboard documents into the service store.
type SeedDashboardsCommand struct {
	service   *dashgrid.Service
	telemetry recorder
}

// NewSeedDashboardsCommand wires dependencies.
func NewSeedDashboardsCommand(service *dashgrid.Service, telemetry Telemetry) *SeedDashboardsCommand {
	return &SeedDashboardsCommand{service: service, telemetry: newRecorder(telemetry)}
}

var _ gocommand.Commander[SeedDashboardsInput] = (*SeedDashboardsCommand)(nil)

// Execute runs the import pipeline.
func (c *SeedDashboardsCommand) Execute(ctx context.Context, msg SeedDashboardsInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	if err := dashgrid.ImportDocuments(ctx, c.service, msg.Paths...); err != nil {
		return err
	}
	c.telemetry.record(ctx, "seed", map[string]any{"documents": len(msg.Paths)})
	return nil
}
