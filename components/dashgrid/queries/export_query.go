package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

type exportService interface {
	Export(ctx context.Context, dashboardID string) (*dashgrid.DashboardDocument, error)
}

// ExportQuery returns a stored dashboard as a document.
type ExportQuery struct {
	service exportService
}

// NewExportQuery builds the query.
func NewExportQuery(service exportService) *ExportQuery {
	return &ExportQuery{service: service}
}

var _ gocommand.Querier[string, *dashgrid.DashboardDocument] = (*ExportQuery)(nil)

// Query exports the dashboard with the given id.
func (q *ExportQuery) Query(ctx context.Context, dashboardID string) (*dashgrid.DashboardDocument, error) {
	return q.service.Export(ctx, dashboardID)
}
