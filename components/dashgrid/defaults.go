package dashgrid

const (
	// DefaultColumns is the number of grid columns used by dashboards.
	DefaultColumns = 24
	// DefaultRowHeight is the pixel height of one grid row.
	DefaultRowHeight = 30
	// DefaultMargin is the pixel gap between cells on both axes.
	DefaultMargin = 8
	// DefaultMaxRows bounds vertical placement of grid panels.
	DefaultMaxRows = 1000
	// DefaultFloatingMaxRows bounds vertical placement of floating panels.
	DefaultFloatingMaxRows = 100
	// DefaultBreakpointMD is the container width below which panels stack.
	DefaultBreakpointMD = 769
	// DefaultViewingHeightRatio is the share of the viewport height a viewed panel takes.
	DefaultViewingHeightRatio = 0.85
)

// Breakpoints controls the grid/stacked transition.
type Breakpoints struct {
	MD float64 `json:"md" yaml:"md" toml:"md" mapstructure:"md"`
	// Hysteresis keeps the previous mode while the width is within MD±Hysteresis.
	Hysteresis float64 `json:"hysteresis" yaml:"hysteresis" toml:"hysteresis" mapstructure:"hysteresis"`
}

// Settings holds the static grid parameters. A GridConfig is derived from
// Settings plus the measured container width on every layout pass.
type Settings struct {
	Columns            int         `json:"columns" yaml:"columns" toml:"columns" mapstructure:"columns"`
	RowHeight          float64     `json:"row_height" yaml:"row_height" toml:"row_height" mapstructure:"row_height"`
	Margin             Pair        `json:"margin" yaml:"margin" toml:"margin" mapstructure:"margin"`
	ContainerPadding   Pair        `json:"container_padding" yaml:"container_padding" toml:"container_padding" mapstructure:"container_padding"`
	MaxRows            int         `json:"max_rows" yaml:"max_rows" toml:"max_rows" mapstructure:"max_rows"`
	FloatingMaxRows    int         `json:"floating_max_rows" yaml:"floating_max_rows" toml:"floating_max_rows" mapstructure:"floating_max_rows"`
	Breakpoints        Breakpoints `json:"breakpoints" yaml:"breakpoints" toml:"breakpoints" mapstructure:"breakpoints"`
	ViewingHeightRatio float64     `json:"viewing_height_ratio" yaml:"viewing_height_ratio" toml:"viewing_height_ratio" mapstructure:"viewing_height_ratio"`
}

// DefaultSettings returns the stock dashboard grid parameters.
func DefaultSettings() Settings {
	return Settings{
		Columns:            DefaultColumns,
		RowHeight:          DefaultRowHeight,
		Margin:             Pair{X: DefaultMargin, Y: DefaultMargin},
		MaxRows:            DefaultMaxRows,
		FloatingMaxRows:    DefaultFloatingMaxRows,
		Breakpoints:        Breakpoints{MD: DefaultBreakpointMD},
		ViewingHeightRatio: DefaultViewingHeightRatio,
	}
}

// WithDefaults fills zero fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	def := DefaultSettings()
	if s.Columns == 0 {
		s.Columns = def.Columns
	}
	if s.RowHeight == 0 {
		s.RowHeight = def.RowHeight
	}
	if s.MaxRows == 0 {
		s.MaxRows = def.MaxRows
	}
	if s.FloatingMaxRows == 0 {
		s.FloatingMaxRows = def.FloatingMaxRows
	}
	if s.Breakpoints.MD == 0 {
		s.Breakpoints.MD = def.Breakpoints.MD
	}
	if s.ViewingHeightRatio == 0 {
		s.ViewingHeightRatio = def.ViewingHeightRatio
	}
	return s
}

// Override returns s with every non-zero field of o applied on top. Zero fields
// in o inherit from s.
func (s Settings) Override(o Settings) Settings {
	if o.Columns != 0 {
		s.Columns = o.Columns
	}
	if o.RowHeight != 0 {
		s.RowHeight = o.RowHeight
	}
	if o.Margin != (Pair{}) {
		s.Margin = o.Margin
	}
	if o.ContainerPadding != (Pair{}) {
		s.ContainerPadding = o.ContainerPadding
	}
	if o.MaxRows != 0 {
		s.MaxRows = o.MaxRows
	}
	if o.FloatingMaxRows != 0 {
		s.FloatingMaxRows = o.FloatingMaxRows
	}
	if o.Breakpoints.MD != 0 {
		s.Breakpoints.MD = o.Breakpoints.MD
	}
	if o.Breakpoints.Hysteresis != 0 {
		s.Breakpoints.Hysteresis = o.Breakpoints.Hysteresis
	}
	if o.ViewingHeightRatio != 0 {
		s.ViewingHeightRatio = o.ViewingHeightRatio
	}
	return s
}

// GridConfig derives the per-pass configuration for the measured container width.
func (s Settings) GridConfig(containerWidth float64) GridConfig {
	return GridConfig{
		Columns:          s.Columns,
		RowHeight:        s.RowHeight,
		Margin:           s.Margin,
		ContainerPadding: s.ContainerPadding,
		ContainerWidth:   containerWidth,
		MaxRows:          s.MaxRows,
	}
}

// FloatingConfig derives the configuration used by floating and side panels:
// no margins or padding, spanning the whole viewport.
func (s Settings) FloatingConfig(viewportWidth float64) GridConfig {
	return GridConfig{
		Columns:        s.Columns,
		RowHeight:      s.RowHeight,
		ContainerWidth: viewportWidth,
		MaxRows:        s.FloatingMaxRows,
	}
}
