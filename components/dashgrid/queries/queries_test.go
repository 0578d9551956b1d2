package queries

import (
	"context"
	"testing"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

type stubLayoutService struct {
	calls   int
	lastID  string
	lastCtx dashgrid.LayoutContext
}

func (s *stubLayoutService) ConfigureLayout(_ context.Context, id string, lctx dashgrid.LayoutContext) (dashgrid.Layout, error) {
	s.calls++
	s.lastID, s.lastCtx = id, lctx
	return dashgrid.Layout{DashboardID: id}, nil
}

type stubGridItemsService struct {
	calls    int
	editable bool
}

func (s *stubGridItemsService) GridItems(_ context.Context, _ string, _ dashgrid.LayoutContext, editable bool) ([]dashgrid.LayoutItem, error) {
	s.calls++
	s.editable = editable
	return []dashgrid.LayoutItem{{Key: "a"}}, nil
}

func TestLayoutQuery(t *testing.T) {
	service := &stubLayoutService{}
	query := NewLayoutQuery(service)
	lctx := dashgrid.LayoutContext{ContainerWidth: 1024}
	layout, err := query.Query(context.Background(), LayoutInput{DashboardID: "ops", Context: lctx})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if layout.DashboardID != "ops" || service.lastCtx != lctx {
		t.Fatalf("expected input propagation, got %#v", service)
	}
}

func TestGridItemsQuery(t *testing.T) {
	service := &stubGridItemsService{}
	query := NewGridItemsQuery(service)
	items, err := query.Query(context.Background(), GridItemsInput{DashboardID: "ops", Editable: true})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(items) != 1 || !service.editable {
		t.Fatalf("expected editable items, got %#v", items)
	}
}

func TestExportQuery(t *testing.T) {
	service := dashgrid.NewService(dashgrid.Options{})
	_, err := service.ImportDocument(context.Background(), &dashgrid.DashboardDocument{
		Version: dashgrid.DocumentVersion,
		ID:      "ops",
		Panels:  []dashgrid.PanelDocument{{Key: "a", GridPos: dashgrid.GridRect{W: 2, H: 2}}},
	})
	if err != nil {
		t.Fatalf("ImportDocument returned error: %v", err)
	}
	doc, err := NewExportQuery(service).Query(context.Background(), "ops")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(doc.Panels) != 1 || doc.Panels[0].Key != "a" {
		t.Fatalf("unexpected export %#v", doc)
	}
}
