package dashgrid

import "math"

// Pair holds an x/y pixel quantity (margins, container padding).
type Pair struct {
	X float64 `json:"x" yaml:"x" toml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y" mapstructure:"y"`
}

// GridConfig parameterizes a single layout pass. It is derived fresh from the
// current measurements and never mutated in place.
type GridConfig struct {
	Columns          int
	RowHeight        float64
	Margin           Pair
	ContainerPadding Pair
	ContainerWidth   float64
	MaxRows          int
}

// GridRect is a panel position in grid units.
type GridRect struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
	W int `json:"w" yaml:"w" toml:"w"`
	H int `json:"h" yaml:"h" toml:"h"`
}

// GridPoint is the position half of a GridRect, produced by drag gestures.
type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GridSize is the size half of a GridRect, produced by resize gestures.
type GridSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// PixelRect is a screen-space rectangle.
type PixelRect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Bottom returns Top + Height.
func (r PixelRect) Bottom() float64 {
	return r.Top + r.Height
}

// IsFinite reports whether every coordinate is a finite number.
func (r PixelRect) IsFinite() bool {
	for _, v := range [...]float64{r.Left, r.Top, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LiveState carries the raw pixel geometry of an in-flight gesture. When set,
// ToPixelRectLive uses it instead of the grid-derived value for that axis pair.
type LiveState struct {
	Dragging *PixelRect
	Resizing *PixelRect
}

// ColumnWidth returns the unrounded width of one column.
func ColumnWidth(cfg GridConfig) float64 {
	return (cfg.ContainerWidth - cfg.Margin.X*float64(cfg.Columns-1) - cfg.ContainerPadding.X*2) / float64(cfg.Columns)
}

// GridUnitsToPixels converts a span of grid units to pixels. n units carry n-1
// internal margins. Non-finite spans are returned unchanged so that unbounded
// constraints stay unbounded instead of turning into NaN.
func GridUnitsToPixels(units, cellSize, margin float64) float64 {
	if math.IsInf(units, 0) || math.IsNaN(units) {
		return units
	}
	return round(cellSize*units + math.Max(0, units-1)*margin)
}

// ToPixelRect places a grid rectangle on screen.
func ToPixelRect(cfg GridConfig, rect GridRect) PixelRect {
	return ToPixelRectLive(cfg, rect, LiveState{})
}

// ToPixelRectLive places a grid rectangle on screen, substituting live gesture
// geometry where present: Resizing replaces width/height, Dragging replaces
// left/top.
func ToPixelRectLive(cfg GridConfig, rect GridRect, live LiveState) PixelRect {
	colWidth := ColumnWidth(cfg)
	var out PixelRect
	if live.Resizing != nil {
		out.Width = round(live.Resizing.Width)
		out.Height = round(live.Resizing.Height)
	} else {
		out.Width = GridUnitsToPixels(float64(rect.W), colWidth, cfg.Margin.X)
		out.Height = GridUnitsToPixels(float64(rect.H), cfg.RowHeight, cfg.Margin.Y)
	}
	if live.Dragging != nil {
		out.Top = round(live.Dragging.Top)
		out.Left = round(live.Dragging.Left)
	} else {
		out.Top = round((cfg.RowHeight+cfg.Margin.Y)*float64(rect.Y) + cfg.ContainerPadding.Y)
		out.Left = round((colWidth+cfg.Margin.X)*float64(rect.X) + cfg.ContainerPadding.X)
	}
	return out
}

// ToGridRectFromDrag snaps a dragged pixel position to the nearest in-bounds
// grid position. Width and height are not changed by a drag.
func ToGridRectFromDrag(cfg GridConfig, top, left float64, w, h int) GridPoint {
	colWidth := ColumnWidth(cfg)
	w = Clamp(w, 0, cfg.Columns)
	h = Clamp(h, 0, cfg.MaxRows)

	// left = x*(colWidth+margin) + margin
	x := toInt(round((left - cfg.Margin.X) / (colWidth + cfg.Margin.X)))
	y := toInt(round((top - cfg.Margin.Y) / (cfg.RowHeight + cfg.Margin.Y)))

	return GridPoint{
		X: Clamp(x, 0, cfg.Columns-w),
		Y: Clamp(y, 0, cfg.MaxRows-h),
	}
}

// ToGridRectFromResize snaps a resized pixel size to the nearest in-bounds grid
// size. The position is not changed by a resize.
func ToGridRectFromResize(cfg GridConfig, width, height float64, x, y int) GridSize {
	colWidth := ColumnWidth(cfg)
	x = Clamp(x, 0, cfg.Columns)
	y = Clamp(y, 0, cfg.MaxRows)

	// width = w*colWidth + (w-1)*margin
	w := toInt(round((width + cfg.Margin.X) / (colWidth + cfg.Margin.X)))
	h := toInt(round((height + cfg.Margin.Y) / (cfg.RowHeight + cfg.Margin.Y)))

	return GridSize{
		W: Clamp(w, 0, cfg.Columns-x),
		H: Clamp(h, 0, cfg.MaxRows-y),
	}
}

// Clamp bounds value to [low, high]. Callers must not pass low > high; in that
// case the result is low.
func Clamp(value, low, high int) int {
	return max(min(value, high), low)
}

// round rounds half up, so -2.5 becomes -2.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// toInt saturates non-finite values so clamping still applies.
func toInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}
