package dashgrid

import "context"

type layoutResolver interface {
	ConfigureLayout(ctx context.Context, dashboardID string, lctx LayoutContext) (Layout, error)
	GridItems(ctx context.Context, dashboardID string, lctx LayoutContext, editable bool) ([]LayoutItem, error)
}

// Controller shapes layout passes into transport payloads.
type Controller struct {
	service layoutResolver
}

// NewController wires the service into a controller.
func NewController(service layoutResolver) *Controller {
	return &Controller{service: service}
}

// LayoutPayload is the JSON document served to clients for one render pass.
type LayoutPayload struct {
	Layout    Layout       `json:"layout"`
	GridItems []LayoutItem `json:"grid_items"`
	Editable  bool         `json:"editable"`
}

// LayoutPayload resolves placements and host grid items for a dashboard.
func (c *Controller) LayoutPayload(ctx context.Context, dashboardID string, lctx LayoutContext, editable bool) (LayoutPayload, error) {
	if c.service == nil {
		return LayoutPayload{}, nil
	}
	layout, err := c.service.ConfigureLayout(ctx, dashboardID, lctx)
	if err != nil {
		return LayoutPayload{}, err
	}
	items, err := c.service.GridItems(ctx, dashboardID, lctx, editable)
	if err != nil {
		return LayoutPayload{}, err
	}
	return LayoutPayload{
		Layout:    layout,
		GridItems: items,
		Editable:  editable,
	}, nil
}
