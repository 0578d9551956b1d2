package dashgrid

// ArrangeFloating places the floating panels of a dashboard. Floating panels
// use the viewport as their container and ignore grid margins.
func ArrangeFloating(s Settings, lctx LayoutContext, d Dashboard) []Placement {
	cfg := s.FloatingConfig(lctx.ViewportWidth)
	var placements []Placement
	for _, p := range d.Panels {
		if !isFloatingCandidate(d, p) {
			continue
		}
		placements = append(placements, Placement{
			Key:     p.Key,
			Kind:    p.kind().KindName(),
			GridPos: p.GridPos,
			Rect:    ToPixelRect(cfg, p.GridPos),
		})
	}
	return placements
}

func isFloatingCandidate(d Dashboard, p Panel) bool {
	if !p.Floating || p.IsViewing {
		return false
	}
	return p.Key != d.SidePanel && p.Key != d.Tabs
}

// SidePanelPlacement returns the side panel position, or false when the
// dashboard has no visible side panel. In stacked mode the side panel spans the
// container.
func SidePanelPlacement(s Settings, lctx LayoutContext, mode Mode, d Dashboard) (Placement, bool) {
	if d.SidePanel == "" {
		return Placement{}, false
	}
	p, ok := d.Panel(d.SidePanel)
	if !ok || p.IsEditing || p.IsViewing {
		return Placement{}, false
	}
	rect := ToPixelRect(s.FloatingConfig(lctx.ViewportWidth), p.GridPos)
	rect.Left, rect.Top = 0, 0
	if mode == ModeStacked {
		rect.Width = round(lctx.ContainerWidth)
	}
	return Placement{
		Key:     p.Key,
		Kind:    p.kind().KindName(),
		GridPos: p.GridPos,
		Rect:    rect,
	}, true
}

// SidePanelMaxWidth is the widest the side panel may be resized to.
func SidePanelMaxWidth(lctx LayoutContext) float64 {
	return lctx.ViewportWidth / 2
}

// SidePanelResize converts a side panel resize to grid units. Only the width is
// resizable; the height is kept.
func SidePanelResize(s Settings, lctx LayoutContext, p Panel, widthPx float64) GridRect {
	widthPx = min(widthPx, SidePanelMaxWidth(lctx))
	cfg := s.FloatingConfig(lctx.ViewportWidth)
	size := ToGridRectFromResize(cfg, widthPx, 0, p.GridPos.X, p.GridPos.Y)
	pos := p.GridPos
	pos.W = size.W
	return pos
}
