package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
	"github.com/goliatone/go-dashgrid/components/dashgrid/config"
)

type globals struct {
	Config         string    `type:"path" help:"Optional config file (yaml, json, toml) with a grid section."`
	ContainerWidth float64   `name:"container-width" default:"1200" help:"Measured container width in pixels."`
	Out            io.Writer `kong:"-"`
}

type cli struct {
	globals `embed:""`

	Place  placeCmd  `cmd:"" help:"Convert a grid rectangle to pixels."`
	Snap   snapCmd   `cmd:"" help:"Snap a dragged pixel position to grid coordinates."`
	Size   sizeCmd   `cmd:"" help:"Snap a resized pixel size to grid units."`
	Layout layoutCmd `cmd:"" help:"Lay out every panel of a dashboard document."`
}

type placeCmd struct {
	X int `arg:"" help:"Column."`
	Y int `arg:"" help:"Row."`
	W int `arg:"" help:"Width in columns."`
	H int `arg:"" help:"Height in rows."`
}

type snapCmd struct {
	Top  float64 `required:"" help:"Dropped top offset in pixels."`
	Left float64 `required:"" help:"Dropped left offset in pixels."`
	W    int     `required:"" help:"Panel width in columns."`
	H    int     `required:"" help:"Panel height in rows."`
}

type sizeCmd struct {
	Width  float64 `required:"" help:"Resized width in pixels."`
	Height float64 `required:"" help:"Resized height in pixels."`
	X      int     `required:"" help:"Panel column."`
	Y      int     `required:"" help:"Panel row."`
}

type layoutCmd struct {
	Document       string  `arg:"" type:"existingfile" help:"Dashboard document (yaml, json, toml)."`
	ViewportWidth  float64 `name:"viewport-width" help:"Viewport width in pixels (defaults to the container width)."`
	ViewportHeight float64 `name:"viewport-height" default:"900" help:"Viewport height in pixels."`
}

func main() {
	app := &cli{globals: globals{Out: os.Stdout}}
	ctx := kong.Parse(app,
		kong.Description("Grid coordinate utility for go-dashgrid dashboards."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run(&app.globals)
	ctx.FatalIfErrorf(err)
}

func (g *globals) settings() (dashgrid.Settings, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return dashgrid.Settings{}, fmt.Errorf("gridctl: %w", err)
	}
	return cfg.Grid, nil
}

func (g *globals) gridConfig() (dashgrid.GridConfig, error) {
	settings, err := g.settings()
	if err != nil {
		return dashgrid.GridConfig{}, err
	}
	cfg := settings.GridConfig(g.ContainerWidth)
	if err := dashgrid.ValidateGridConfig(cfg); err != nil {
		return dashgrid.GridConfig{}, fmt.Errorf("gridctl: %w", err)
	}
	return cfg, nil
}

func (g *globals) write(v any) error {
	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("gridctl: write output: %w", err)
	}
	return encoder.Close()
}

func (cmd *placeCmd) Run(_ context.Context, g *globals) error {
	cfg, err := g.gridConfig()
	if err != nil {
		return err
	}
	return g.write(dashgrid.ToPixelRect(cfg, dashgrid.GridRect{X: cmd.X, Y: cmd.Y, W: cmd.W, H: cmd.H}))
}

func (cmd *snapCmd) Run(_ context.Context, g *globals) error {
	cfg, err := g.gridConfig()
	if err != nil {
		return err
	}
	point := dashgrid.ToGridRectFromDrag(cfg, cmd.Top, cmd.Left, cmd.W, cmd.H)
	return g.write(map[string]int{"x": point.X, "y": point.Y})
}

func (cmd *sizeCmd) Run(_ context.Context, g *globals) error {
	cfg, err := g.gridConfig()
	if err != nil {
		return err
	}
	size := dashgrid.ToGridRectFromResize(cfg, cmd.Width, cmd.Height, cmd.X, cmd.Y)
	return g.write(map[string]int{"w": size.W, "h": size.H})
}

type layoutOutput struct {
	Mode      string               `yaml:"mode"`
	Panels    []dashgrid.Placement `yaml:"panels"`
	Floating  []dashgrid.Placement `yaml:"floating,omitempty"`
	SidePanel *dashgrid.Placement  `yaml:"side_panel,omitempty"`
}

func (cmd *layoutCmd) Run(ctx context.Context, g *globals) error {
	settings, err := g.settings()
	if err != nil {
		return err
	}
	doc, err := dashgrid.ReadDocument(cmd.Document)
	if err != nil {
		return err
	}
	service, err := dashgrid.New(dashgrid.Options{Settings: settings})
	if err != nil {
		return fmt.Errorf("gridctl: %w", err)
	}
	if _, err := service.ImportDocument(ctx, doc); err != nil {
		return err
	}
	viewport := cmd.ViewportWidth
	if viewport == 0 {
		viewport = g.ContainerWidth
	}
	layout, err := service.ConfigureLayout(ctx, doc.ID, dashgrid.LayoutContext{
		ContainerWidth: g.ContainerWidth,
		ViewportWidth:  viewport,
		ViewportHeight: cmd.ViewportHeight,
	})
	if err != nil {
		return err
	}
	return g.write(layoutOutput{
		Mode:      layout.Mode.String(),
		Panels:    layout.Panels,
		Floating:  layout.Floating,
		SidePanel: layout.SidePanel,
	})
}
