package dashgrid

import (
	"context"
	"strings"
)

// DashboardStore owns the persisted panel model. Implementations must be safe
// for concurrent use; UpdateGridPos is the only writer of a panel's GridPos.
type DashboardStore interface {
	Dashboard(ctx context.Context, id string) (Dashboard, error)
	SaveDashboard(ctx context.Context, dashboard Dashboard) error
	UpdateGridPos(ctx context.Context, dashboardID, panelKey string, pos GridRect) error
}

// RefreshHook notifies transports (REST/WebSocket) about committed panel changes.
type RefreshHook interface {
	PanelUpdated(ctx context.Context, event PanelEvent) error
}

// PanelKind is the closed set of panel variants. Only types declared in this
// package implement it.
type PanelKind interface {
	KindName() string
	isPanelKind()
}

// RowKind is a collapsible row header spanning the full grid width.
type RowKind struct {
	Collapsed bool
}

// AddPanelKind is the placeholder widget used to add a new panel.
type AddPanelKind struct{}

// ContentKind is a regular visualization panel.
type ContentKind struct {
	Plugin string
}

const (
	kindRow      = "row"
	kindAddPanel = "add-panel"
)

func (RowKind) KindName() string      { return kindRow }
func (AddPanelKind) KindName() string { return kindAddPanel }

func (k ContentKind) KindName() string {
	if k.Plugin == "" {
		return "panel"
	}
	return k.Plugin
}

func (RowKind) isPanelKind()      {}
func (AddPanelKind) isPanelKind() {}
func (ContentKind) isPanelKind()  {}

// ParsePanelKind maps a persisted type string onto a PanelKind.
func ParsePanelKind(typ string, collapsed bool) PanelKind {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case kindRow:
		return RowKind{Collapsed: collapsed}
	case kindAddPanel:
		return AddPanelKind{}
	default:
		return ContentKind{Plugin: typ}
	}
}

// Panel is a single dashboard panel as seen by the layout engine.
type Panel struct {
	ID        int
	Key       string
	Title     string
	GridPos   GridRect
	Floating  bool
	IsViewing bool
	IsEditing bool
	Kind      PanelKind
}

func (p Panel) kind() PanelKind {
	if p.Kind == nil {
		return ContentKind{}
	}
	return p.Kind
}

// Dashboard groups panels plus the keys of the panels hosted outside the grid.
// Grid holds per-dashboard overrides of the service settings.
type Dashboard struct {
	ID        string
	Title     string
	Panels    []Panel
	SidePanel string
	Tabs      string
	Grid      *Settings
}

// Panel returns the panel with the given key.
func (d Dashboard) Panel(key string) (Panel, bool) {
	for _, p := range d.Panels {
		if p.Key == key {
			return p, true
		}
	}
	return Panel{}, false
}

// IsNormalPanel reports whether the panel takes part in grid flow.
func (d Dashboard) IsNormalPanel(p Panel) bool {
	if p.Floating {
		return false
	}
	if d.SidePanel != "" && p.Key == d.SidePanel {
		return false
	}
	if d.Tabs != "" && p.Key == d.Tabs {
		return false
	}
	return true
}

// PanelEvent describes a committed change transports might care about.
type PanelEvent struct {
	DashboardID string   `json:"dashboard_id"`
	PanelKey    string   `json:"panel_key,omitempty"`
	GridPos     GridRect `json:"grid_pos"`
	Reason      string   `json:"reason"`
}
