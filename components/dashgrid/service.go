package dashgrid

import (
	"context"
	"errors"
	"fmt"
)

var (
	errMissingStore       = errors.New("dashgrid: dashboard store not configured")
	errInvalidDashboardID = errors.New("dashgrid: dashboard id is required")
	errInvalidPanelKey    = errors.New("dashgrid: panel key is required")

	// ErrPanelNotResizable is returned when resizing a panel whose kind forbids it.
	ErrPanelNotResizable = errors.New("dashgrid: panel is not resizable")
	// ErrPanelNotDraggable is returned when dragging a panel whose kind forbids it.
	ErrPanelNotDraggable = errors.New("dashgrid: panel is not draggable")
)

// Options configures the Service. Every collaborator is provided via interface
// so applications can swap implementations.
type Options struct {
	Store       DashboardStore
	RefreshHook RefreshHook
	Telemetry   Telemetry
	Validator   DocumentValidator
	Gestures    *GestureTracker
	Settings    Settings
}

// Service orchestrates layout passes and gesture commits on top of a DashboardStore.
type Service struct {
	opts Options
}

// New builds a Service and rejects unusable grid settings.
func New(opts Options) (*Service, error) {
	service := NewService(opts)
	if err := ValidateSettings(service.opts.Settings); err != nil {
		return nil, err
	}
	return service, nil
}

// NewService builds a Service instance with safe defaults. Settings are not
// validated; use New at configuration boundaries.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewInMemoryDashboardStore()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Gestures == nil {
		opts.Gestures = NewGestureTracker()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	opts.Settings = opts.Settings.WithDefaults()
	return &Service{opts: opts}
}

// Settings returns the grid settings used by the service.
func (s *Service) Settings() Settings {
	return s.opts.Settings
}

// Layout is the outcome of one layout pass.
type Layout struct {
	DashboardID string        `json:"dashboard_id"`
	Mode        Mode          `json:"mode"`
	Context     LayoutContext `json:"context"`
	ColumnWidth float64       `json:"column_width"`
	Panels      []Placement   `json:"panels"`
	Floating    []Placement   `json:"floating,omitempty"`
	SidePanel   *Placement    `json:"side_panel,omitempty"`
}

// ConfigureLayout runs a layout pass for the dashboard. The panel snapshot is
// read fresh from the store on every call.
func (s *Service) ConfigureLayout(ctx context.Context, dashboardID string, lctx LayoutContext) (Layout, error) {
	d, err := s.dashboard(ctx, dashboardID)
	if err != nil {
		return Layout{}, err
	}
	settings := s.settingsFor(d)
	mode := SelectMode(lctx, settings.Breakpoints)
	layout := Layout{
		DashboardID: d.ID,
		Mode:        mode,
		Context:     lctx,
		ColumnWidth: ColumnWidth(settings.GridConfig(lctx.ContainerWidth)),
		Panels:      Arrange(settings, lctx, mode, d),
		Floating:    ArrangeFloating(settings, lctx, d),
	}
	if side, ok := SidePanelPlacement(settings, lctx, mode, d); ok {
		layout.SidePanel = &side
	}
	s.recordTelemetry(ctx, "dashgrid.layout.resolve", map[string]any{
		"dashboard_id": d.ID,
		"mode":         mode.String(),
		"panels":       len(layout.Panels),
	})
	return layout, nil
}

// GridItems returns the items handed to the host grid framework.
func (s *Service) GridItems(ctx context.Context, dashboardID string, lctx LayoutContext, editable bool) ([]LayoutItem, error) {
	d, err := s.dashboard(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	return BuildLayout(s.settingsFor(d), lctx, editable, d), nil
}

// BeginGesture starts a drag or resize on a panel and returns its current pixel rectangle.
func (s *Service) BeginGesture(ctx context.Context, dashboardID, panelKey string, kind GestureKind, lctx LayoutContext) (PixelRect, error) {
	d, p, err := s.panel(ctx, dashboardID, panelKey)
	if err != nil {
		return PixelRect{}, err
	}
	if err := checkGestureAllowed(p, kind); err != nil {
		return PixelRect{}, err
	}
	start := ToPixelRect(s.configFor(d, p, lctx), p.GridPos)
	if err := s.opts.Gestures.Begin(gestureKey(dashboardID, panelKey), kind, p.GridPos, start); err != nil {
		return PixelRect{}, err
	}
	return start, nil
}

// MoveGesture records an intermediate pointer rectangle and returns where the
// panel should be drawn. The committed grid position is not touched.
func (s *Service) MoveGesture(ctx context.Context, dashboardID, panelKey string, lctx LayoutContext, rect PixelRect) (PixelRect, error) {
	d, p, err := s.panel(ctx, dashboardID, panelKey)
	if err != nil {
		return PixelRect{}, err
	}
	live, err := s.opts.Gestures.Move(gestureKey(dashboardID, panelKey), rect)
	if err != nil {
		return PixelRect{}, err
	}
	return ToPixelRectLive(s.configFor(d, p, lctx), p.GridPos, live), nil
}

// CancelGesture aborts a gesture without committing anything.
func (s *Service) CancelGesture(ctx context.Context, dashboardID, panelKey string) bool {
	cancelled := s.opts.Gestures.Cancel(gestureKey(dashboardID, panelKey))
	if cancelled {
		s.recordTelemetry(ctx, "dashgrid.gesture.cancel", map[string]any{
			"dashboard_id": dashboardID,
			"panel_key":    panelKey,
		})
	}
	return cancelled
}

// EndGesture is the terminal stop event of a gesture. It is the only path of
// the gesture lifecycle that writes a GridRect.
func (s *Service) EndGesture(ctx context.Context, dashboardID, panelKey string, lctx LayoutContext, final PixelRect) (GridRect, error) {
	g, err := s.opts.Gestures.Stop(gestureKey(dashboardID, panelKey), final)
	if err != nil {
		return GridRect{}, err
	}
	d, p, err := s.panel(ctx, dashboardID, panelKey)
	if err != nil {
		return GridRect{}, err
	}
	// The stored position may have changed since the gesture began.
	g.Origin = p.GridPos
	return s.commit(ctx, d, p, g, lctx)
}

// CommitDrag commits a finished drag reported by a transport in one call.
func (s *Service) CommitDrag(ctx context.Context, dashboardID, panelKey string, lctx LayoutContext, top, left float64) (GridRect, error) {
	return s.commitStateless(ctx, dashboardID, panelKey, lctx, GestureDrag, PixelRect{Top: top, Left: left})
}

// CommitResize commits a finished resize reported by a transport in one call.
func (s *Service) CommitResize(ctx context.Context, dashboardID, panelKey string, lctx LayoutContext, width, height float64) (GridRect, error) {
	return s.commitStateless(ctx, dashboardID, panelKey, lctx, GestureResize, PixelRect{Width: width, Height: height})
}

func (s *Service) commitStateless(ctx context.Context, dashboardID, panelKey string, lctx LayoutContext, kind GestureKind, final PixelRect) (GridRect, error) {
	if !final.IsFinite() {
		return GridRect{}, fmt.Errorf("%w: %s", ErrInvalidFinalRect, panelKey)
	}
	d, p, err := s.panel(ctx, dashboardID, panelKey)
	if err != nil {
		return GridRect{}, err
	}
	if err := checkGestureAllowed(p, kind); err != nil {
		return GridRect{}, err
	}
	// A one-shot commit supersedes any gesture a client began and abandoned.
	s.opts.Gestures.Cancel(gestureKey(dashboardID, panelKey))
	return s.commit(ctx, d, p, Gesture{Key: panelKey, Kind: kind, Origin: p.GridPos, Live: final}, lctx)
}

func (s *Service) commit(ctx context.Context, d Dashboard, p Panel, g Gesture, lctx LayoutContext) (GridRect, error) {
	var next GridRect
	if g.Kind == GestureResize && d.SidePanel != "" && p.Key == d.SidePanel {
		next = SidePanelResize(s.settingsFor(d), lctx, p, g.Live.Width)
	} else {
		next = g.Commit(s.configFor(d, p, lctx))
	}
	if err := s.opts.Store.UpdateGridPos(ctx, d.ID, p.Key, next); err != nil {
		return GridRect{}, err
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		DashboardID: d.ID,
		PanelKey:    p.Key,
		GridPos:     next,
		Reason:      g.Kind.String(),
	}); err != nil {
		return GridRect{}, err
	}
	s.recordTelemetry(ctx, "dashgrid.panel."+g.Kind.String(), map[string]any{
		"dashboard_id": d.ID,
		"panel_key":    p.Key,
		"x":            next.X,
		"y":            next.Y,
		"w":            next.W,
		"h":            next.H,
	})
	return next, nil
}

// ApplyLayoutChange stores the positions reported by the host grid after it
// resolved a layout. Panels outside grid flow are skipped; panels are then
// re-sorted by position.
func (s *Service) ApplyLayoutChange(ctx context.Context, dashboardID string, items []LayoutItem) error {
	d, err := s.dashboard(ctx, dashboardID)
	if err != nil {
		return err
	}
	positions := make(map[string]GridRect, len(items))
	for _, item := range items {
		positions[item.Key] = item.GridPos
	}
	updated := 0
	for i, p := range d.Panels {
		pos, ok := positions[p.Key]
		if !ok || !d.IsNormalPanel(p) {
			continue
		}
		d.Panels[i].GridPos = pos
		updated++
	}
	SortPanelsByGridPos(d.Panels)
	if err := s.opts.Store.SaveDashboard(ctx, d); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		DashboardID: d.ID,
		Reason:      "layout",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashgrid.layout.change", map[string]any{
		"dashboard_id": d.ID,
		"updated":      updated,
	})
	return nil
}

// ImportDocument validates a dashboard document and stores it.
func (s *Service) ImportDocument(ctx context.Context, doc *DashboardDocument) (Dashboard, error) {
	if doc == nil {
		return Dashboard{}, fmt.Errorf("dashgrid: document is nil")
	}
	if err := s.opts.Validator.ValidateDocument(doc); err != nil {
		return Dashboard{}, err
	}
	if err := ValidateSettings(doc.Settings(s.opts.Settings)); err != nil {
		return Dashboard{}, fmt.Errorf("dashgrid: document %s: %w", doc.ID, err)
	}
	d := doc.Dashboard()
	if err := s.opts.Store.SaveDashboard(ctx, d); err != nil {
		return Dashboard{}, err
	}
	s.recordTelemetry(ctx, "dashgrid.document.import", map[string]any{
		"dashboard_id": d.ID,
		"panels":       len(d.Panels),
		"source":       doc.Source,
	})
	return d, nil
}

// Export returns the stored dashboard as a document.
func (s *Service) Export(ctx context.Context, dashboardID string) (*DashboardDocument, error) {
	d, err := s.dashboard(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	return DocumentFromDashboard(d), nil
}

// settingsFor applies the dashboard's own grid overrides to the service settings.
func (s *Service) settingsFor(d Dashboard) Settings {
	if d.Grid == nil {
		return s.opts.Settings
	}
	return s.opts.Settings.Override(*d.Grid)
}

func (s *Service) configFor(d Dashboard, p Panel, lctx LayoutContext) GridConfig {
	settings := s.settingsFor(d)
	if !d.IsNormalPanel(p) {
		return settings.FloatingConfig(lctx.ViewportWidth)
	}
	return settings.GridConfig(lctx.ContainerWidth)
}

func (s *Service) dashboard(ctx context.Context, dashboardID string) (Dashboard, error) {
	if s.opts.Store == nil {
		return Dashboard{}, errMissingStore
	}
	if dashboardID == "" {
		return Dashboard{}, errInvalidDashboardID
	}
	return s.opts.Store.Dashboard(ctx, dashboardID)
}

func (s *Service) panel(ctx context.Context, dashboardID, panelKey string) (Dashboard, Panel, error) {
	if panelKey == "" {
		return Dashboard{}, Panel{}, errInvalidPanelKey
	}
	d, err := s.dashboard(ctx, dashboardID)
	if err != nil {
		return Dashboard{}, Panel{}, err
	}
	p, ok := d.Panel(panelKey)
	if !ok {
		return Dashboard{}, Panel{}, fmt.Errorf("%w: %s", ErrPanelNotFound, panelKey)
	}
	return d, p, nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func checkGestureAllowed(p Panel, kind GestureKind) error {
	row, ok := p.kind().(RowKind)
	if !ok {
		return nil
	}
	switch {
	case kind == GestureResize:
		return fmt.Errorf("%w: %s", ErrPanelNotResizable, p.Key)
	case kind == GestureDrag && !row.Collapsed:
		return fmt.Errorf("%w: %s", ErrPanelNotDraggable, p.Key)
	}
	return nil
}

func gestureKey(dashboardID, panelKey string) string {
	return dashboardID + "/" + panelKey
}

type noopRefreshHook struct{}

func (noopRefreshHook) PanelUpdated(context.Context, PanelEvent) error {
	return nil
}
