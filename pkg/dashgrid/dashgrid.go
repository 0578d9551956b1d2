package dashgrid

import (
	core "github.com/goliatone/go-dashgrid/components/dashgrid"
)

// Service exposes the underlying components/dashgrid.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Settings re-export for convenience.
type Settings = core.Settings

// GridConfig re-export for convenience.
type GridConfig = core.GridConfig

// GridRect re-export for convenience.
type GridRect = core.GridRect

// PixelRect re-export for convenience.
type PixelRect = core.PixelRect

// LayoutContext re-export for convenience.
type LayoutContext = core.LayoutContext

// New proxies to the validating constructor.
func New(opts Options) (*Service, error) {
	return core.New(opts)
}

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// DefaultSettings proxies to the internal defaults.
func DefaultSettings() Settings {
	return core.DefaultSettings()
}

// ToPixelRect places a grid rectangle on screen.
func ToPixelRect(cfg GridConfig, rect GridRect) PixelRect {
	return core.ToPixelRect(cfg, rect)
}
