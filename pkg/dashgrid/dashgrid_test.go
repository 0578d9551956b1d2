package dashgrid

import (
	"context"
	"testing"
)

func TestFacadeProxiesCore(t *testing.T) {
	service := NewService(Options{Settings: DefaultSettings()})
	if service.Settings().Columns != 24 {
		t.Fatalf("expected default columns, got %d", service.Settings().Columns)
	}
	if _, err := service.ConfigureLayout(context.Background(), "missing", LayoutContext{ContainerWidth: 1200}); err == nil {
		t.Fatalf("expected missing dashboard error")
	}
	rect := ToPixelRect(GridConfig{Columns: 24, RowHeight: 30, ContainerWidth: 1200, MaxRows: 10}, GridRect{W: 2, H: 1})
	if rect.Width != 100 || rect.Height != 30 {
		t.Fatalf("unexpected rect %#v", rect)
	}
}

func TestFacadeNewValidates(t *testing.T) {
	if _, err := New(Options{Settings: Settings{RowHeight: -1}}); err == nil {
		t.Fatalf("expected invalid settings to be rejected")
	}
}
