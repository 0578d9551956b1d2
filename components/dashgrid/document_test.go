package dashgrid

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDocument = `
id: ops
title: Operations
side_panel: notes
grid:
  columns: 12
  row_height: 20
panels:
  - key: cpu
    title: CPU
    type: timeseries
    grid_pos: {x: 0, y: 0, w: 6, h: 4}
  - key: section
    type: row
    collapsed: true
    grid_pos: {x: 0, y: 4, w: 12, h: 1}
  - key: notes
    type: text
    grid_pos: {x: 0, y: 0, w: 4, h: 10}
`

func TestDecodeDocumentYAML(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(yamlDocument), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Equal(t, "ops", doc.ID)
	require.Len(t, doc.Panels, 3)
	assert.Equal(t, GridRect{X: 0, Y: 4, W: 12, H: 1}, doc.Panels[1].GridPos)

	settings := doc.Settings(DefaultSettings())
	assert.Equal(t, 12, settings.Columns)
	assert.Equal(t, 20.0, settings.RowHeight)
	assert.Equal(t, float64(DefaultBreakpointMD), settings.Breakpoints.MD)
	assert.Equal(t, Pair{X: DefaultMargin, Y: DefaultMargin}, settings.Margin, "margins inherit from base")

	d := doc.Dashboard()
	assert.Equal(t, "notes", d.SidePanel)
	assert.Equal(t, RowKind{Collapsed: true}, d.Panels[1].Kind)
	assert.Equal(t, ContentKind{Plugin: "timeseries"}, d.Panels[0].Kind)
}

func TestDecodeDocumentJSONAndTOML(t *testing.T) {
	jsonDoc := `{"id":"ops","panels":[{"key":"cpu","grid_pos":{"x":1,"y":2,"w":3,"h":4}}]}`
	doc, err := DecodeDocument(strings.NewReader(jsonDoc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, GridRect{X: 1, Y: 2, W: 3, H: 4}, doc.Panels[0].GridPos)

	tomlDoc := `
id = "ops"

[[panels]]
key = "cpu"
grid_pos = { x = 1, y = 2, w = 3, h = 4 }
`
	doc, err = DecodeDocument(strings.NewReader(tomlDoc), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "cpu", doc.Panels[0].Key)
	assert.Equal(t, GridRect{X: 1, Y: 2, W: 3, H: 4}, doc.Panels[0].GridPos)
}

func TestDecodeDocumentRejectsInvalidInput(t *testing.T) {
	cases := map[string]struct {
		body   string
		format Format
	}{
		"empty":          {body: "", format: FormatYAML},
		"unknown field":  {body: "id: ops\nwidgets: []\n", format: FormatYAML},
		"missing id":     {body: "panels: []\n", format: FormatYAML},
		"bad version":    {body: "version: \"9\"\nid: ops\n", format: FormatYAML},
		"negative pos":   {body: `{"id":"ops","panels":[{"grid_pos":{"x":-1,"y":0,"w":1,"h":1}}]}`, format: FormatJSON},
		"duplicate keys": {body: `{"id":"ops","panels":[{"key":"a","grid_pos":{"x":0,"y":0,"w":1,"h":1}},{"key":"a","grid_pos":{"x":0,"y":0,"w":1,"h":1}}]}`, format: FormatJSON},
		"toml unknown":   {body: "id = \"ops\"\nextra = 1\n", format: FormatTOML},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeDocument(strings.NewReader(tc.body), tc.format); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestReadDocumentSetsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDocument), 0o600))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	_, err = ReadDocument(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEncodeDocumentRoundTrip(t *testing.T) {
	d := seedDashboard()
	doc := DocumentFromDashboard(d)

	var buf bytes.Buffer
	require.NoError(t, EncodeDocument(&buf, doc))
	assert.Contains(t, buf.String(), "grid_pos:")

	decoded, err := DecodeDocument(&buf, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, doc.Panels, decoded.Panels)
	assert.Equal(t, "side", decoded.SidePanel)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatTOML, FormatFromPath("b.toml"))
	assert.Equal(t, FormatYAML, FormatFromPath("b.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("b"))
}
