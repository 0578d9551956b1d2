package dashgrid

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ettle/strcase"
	"github.com/google/uuid"
)

// Mode is the layout state selected on each pass.
type Mode int

const (
	// ModeGrid tiles panels by their grid coordinates.
	ModeGrid Mode = iota
	// ModeStacked renders panels in a single column in list order.
	ModeStacked
)

func (m Mode) String() string {
	switch m {
	case ModeStacked:
		return "stacked"
	default:
		return "grid"
	}
}

// MarshalText renders the mode name in JSON/YAML payloads.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// LayoutContext is captured once per render and threaded through the pass.
type LayoutContext struct {
	ContainerWidth float64 `json:"container_width"`
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
	// PreviousMode is the mode chosen by the last pass. Only consulted when
	// Breakpoints.Hysteresis is positive.
	PreviousMode Mode `json:"-"`
}

// Placement is the on-screen position computed for a panel.
type Placement struct {
	Key     string    `json:"key" yaml:"key"`
	Kind    string    `json:"kind" yaml:"kind"`
	GridPos GridRect  `json:"grid_pos" yaml:"grid_pos"`
	Rect    PixelRect `json:"rect" yaml:"rect"`
	Viewing bool      `json:"viewing,omitempty" yaml:"viewing,omitempty"`
}

// LayoutItem is what the host grid framework receives for a panel.
type LayoutItem struct {
	Key       string   `json:"key"`
	GridPos   GridRect `json:"grid_pos"`
	Resizable bool     `json:"resizable"`
	Draggable bool     `json:"draggable"`
}

// SelectMode picks grid or stacked mode from the container width.
func SelectMode(lctx LayoutContext, bp Breakpoints) Mode {
	width := lctx.ContainerWidth
	if bp.Hysteresis > 0 {
		if lctx.PreviousMode == ModeStacked {
			if width < bp.MD+bp.Hysteresis {
				return ModeStacked
			}
			return ModeGrid
		}
		if width < bp.MD-bp.Hysteresis {
			return ModeStacked
		}
		return ModeGrid
	}
	if width < bp.MD {
		return ModeStacked
	}
	return ModeGrid
}

// Arrange computes placements for the in-grid panels of a dashboard. Viewed
// panels are always included. Nothing is placed until the container width is
// known.
func Arrange(s Settings, lctx LayoutContext, mode Mode, d Dashboard) []Placement {
	if lctx.ContainerWidth <= 0 {
		return nil
	}
	cfg := s.GridConfig(lctx.ContainerWidth)
	placements := make([]Placement, 0, len(d.Panels))
	stack := stackFold{}
	for _, p := range d.Panels {
		if !d.IsNormalPanel(p) && !p.IsViewing {
			continue
		}
		pos := constrainedGridPos(cfg, p)
		var rect PixelRect
		switch {
		case p.IsViewing:
			rect = viewingRect(cfg, s, lctx)
		case mode == ModeStacked:
			height := GridUnitsToPixels(float64(pos.H), cfg.RowHeight, cfg.Margin.Y)
			rect, stack = stack.next(cfg, height)
		default:
			rect = ToPixelRect(cfg, pos)
		}
		placements = append(placements, Placement{
			Key:     p.Key,
			Kind:    p.kind().KindName(),
			GridPos: pos,
			Rect:    rect,
			Viewing: p.IsViewing,
		})
	}
	return placements
}

// Stack folds pixel heights into stacked rectangles: the first starts at the
// container padding, each next one a margin below the previous bottom.
func Stack(cfg GridConfig, heights []float64) []PixelRect {
	rects := make([]PixelRect, len(heights))
	stack := stackFold{}
	for i, h := range heights {
		rects[i], stack = stack.next(cfg, h)
	}
	return rects
}

// stackFold is the accumulator of the stacked-mode fold: the bottom edge of the
// previously stacked panel.
type stackFold struct {
	bottom  float64
	started bool
}

func (f stackFold) next(cfg GridConfig, height float64) (PixelRect, stackFold) {
	top := cfg.ContainerPadding.Y
	if f.started {
		top = f.bottom + cfg.Margin.Y
	}
	rect := PixelRect{
		Left:   cfg.ContainerPadding.X,
		Top:    top,
		Width:  round(cfg.ContainerWidth),
		Height: height,
	}
	return rect, stackFold{bottom: rect.Bottom(), started: true}
}

func viewingRect(cfg GridConfig, s Settings, lctx LayoutContext) PixelRect {
	return PixelRect{
		Left:   cfg.ContainerPadding.X,
		Top:    cfg.ContainerPadding.Y,
		Width:  round(cfg.ContainerWidth),
		Height: round(lctx.ViewportHeight * s.ViewingHeightRatio),
	}
}

// constrainedGridPos applies the per-kind geometry rules.
func constrainedGridPos(cfg GridConfig, p Panel) GridRect {
	pos := p.GridPos
	switch p.kind().(type) {
	case RowKind:
		pos.X = 0
		pos.W = cfg.Columns
		pos.H = 1
	}
	return pos
}

// BuildLayout produces the host grid items for every panel. Dragging is turned
// off below the md breakpoint to avoid accidental moves on touch devices.
func BuildLayout(s Settings, lctx LayoutContext, editable bool, d Dashboard) []LayoutItem {
	cfg := s.GridConfig(lctx.ContainerWidth)
	draggable := editable
	if lctx.ContainerWidth <= s.Breakpoints.MD {
		draggable = false
	}
	items := make([]LayoutItem, 0, len(d.Panels))
	for _, p := range d.Panels {
		item := LayoutItem{
			Key:       p.Key,
			GridPos:   constrainedGridPos(cfg, p),
			Resizable: editable,
			Draggable: draggable,
		}
		switch k := p.kind().(type) {
		case RowKind:
			item.Resizable = false
			item.Draggable = k.Collapsed
		}
		items = append(items, item)
	}
	return items
}

// SortPanelsByGridPos orders panels top to bottom, left to right.
func SortPanelsByGridPos(panels []Panel) {
	slices.SortStableFunc(panels, func(a, b Panel) int {
		if c := cmp.Compare(a.GridPos.Y, b.GridPos.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.GridPos.X, b.GridPos.X)
	})
}

// EnsurePanelKeys assigns a stable key to every panel that lacks one.
func EnsurePanelKeys(d *Dashboard) {
	for i := range d.Panels {
		if d.Panels[i].Key == "" {
			d.Panels[i].Key = newPanelKey(d.Panels[i])
		}
	}
}

func newPanelKey(p Panel) string {
	suffix := uuid.NewString()[:8]
	if p.ID > 0 {
		return fmt.Sprintf("panel-%d-%s", p.ID, suffix)
	}
	if slug := strcase.ToKebab(p.Title); slug != "" {
		return slug + "-" + suffix
	}
	return "panel-" + suffix
}
