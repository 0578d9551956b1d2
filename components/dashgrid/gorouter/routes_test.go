package gorouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func queryOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseLayoutContext(t *testing.T) {
	lctx, err := parseLayoutContext(queryOf(map[string]string{
		"container_width": "1190",
		"viewport_width":  "1280.5",
		"viewport_height": " 900 ",
		"previous_mode":   "Stacked",
	}))
	require.NoError(t, err)
	assert.Equal(t, dashgrid.LayoutContext{
		ContainerWidth: 1190,
		ViewportWidth:  1280.5,
		ViewportHeight: 900,
		PreviousMode:   dashgrid.ModeStacked,
	}, lctx)

	empty, err := parseLayoutContext(queryOf(nil))
	require.NoError(t, err)
	assert.Zero(t, empty.ContainerWidth)
	assert.Equal(t, dashgrid.ModeGrid, empty.PreviousMode)
}

func TestParseLayoutContextRejectsBadNumbers(t *testing.T) {
	for _, raw := range []string{"wide", "-10", "NaN", "+Inf"} {
		_, err := parseLayoutContext(queryOf(map[string]string{"container_width": raw}))
		assert.Error(t, err, raw)
	}
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool(" 1 "))
	assert.False(t, parseBool(""))
	assert.False(t, parseBool("nope"))
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{WebSocket: "/live"})
	assert.Equal(t, "/live", routes.WebSocket)
	assert.Equal(t, "/dashboards/:id/_layout", routes.Layout)
	assert.Equal(t, "/dashboards/:id/panels/:key/drag", routes.Drag)
	assert.Equal(t, "/dashboards/:id/panels/:key/gesture", routes.Gesture)
	assert.Equal(t, "/dashboards/:id/panels/:key/gesture/end", routes.GestureEnd)
}
