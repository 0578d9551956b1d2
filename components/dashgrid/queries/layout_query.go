package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// LayoutInput identifies a layout pass.
type LayoutInput struct {
	DashboardID string
	Context     dashgrid.LayoutContext
}

type layoutService interface {
	ConfigureLayout(ctx context.Context, dashboardID string, lctx dashgrid.LayoutContext) (dashgrid.Layout, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[LayoutInput, dashgrid.Layout] = (*LayoutQuery)(nil)

// Query resolves placements for the dashboard.
func (q *LayoutQuery) Query(ctx context.Context, input LayoutInput) (dashgrid.Layout, error) {
	return q.service.ConfigureLayout(ctx, input.DashboardID, input.Context)
}
