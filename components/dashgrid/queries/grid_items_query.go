package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// GridItemsInput identifies the host grid items request.
type GridItemsInput struct {
	DashboardID string
	Context     dashgrid.LayoutContext
	Editable    bool
}

type gridItemsService interface {
	GridItems(ctx context.Context, dashboardID string, lctx dashgrid.LayoutContext, editable bool) ([]dashgrid.LayoutItem, error)
}

// GridItemsQuery fetches the items handed to the host grid framework.
type GridItemsQuery struct {
	service gridItemsService
}

// NewGridItemsQuery builds the query.
func NewGridItemsQuery(service gridItemsService) *GridItemsQuery {
	return &GridItemsQuery{service: service}
}

var _ gocommand.Querier[GridItemsInput, []dashgrid.LayoutItem] = (*GridItemsQuery)(nil)

func (q *GridItemsQuery) Query(ctx context.Context, input GridItemsInput) ([]dashgrid.LayoutItem, error) {
	return q.service.GridItems(ctx, input.DashboardID, input.Context, input.Editable)
}
