package dashgrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	documentVersionV1 = "1"
	// DocumentVersion exposes the current dashboard document format version for tooling.
	DocumentVersion = documentVersionV1
)

// Format identifies a dashboard document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the document format from the file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// DashboardDocument is the persisted description of a dashboard layout.
type DashboardDocument struct {
	Version   string          `json:"version" yaml:"version" toml:"version"`
	ID        string          `json:"id" yaml:"id" toml:"id"`
	Title     string          `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	SidePanel string          `json:"side_panel,omitempty" yaml:"side_panel,omitempty" toml:"side_panel,omitempty"`
	Tabs      string          `json:"tabs,omitempty" yaml:"tabs,omitempty" toml:"tabs,omitempty"`
	Grid      *Settings       `json:"grid,omitempty" yaml:"grid,omitempty" toml:"grid,omitempty"`
	Panels    []PanelDocument `json:"panels" yaml:"panels" toml:"panels"`
	Source    string          `json:"-" yaml:"-" toml:"-"`
}

// PanelDocument describes a single panel entry within a document.
type PanelDocument struct {
	ID        int      `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Key       string   `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Title     string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Collapsed bool     `json:"collapsed,omitempty" yaml:"collapsed,omitempty" toml:"collapsed,omitempty"`
	Floating  bool     `json:"floating,omitempty" yaml:"floating,omitempty" toml:"floating,omitempty"`
	GridPos   GridRect `json:"grid_pos" yaml:"grid_pos" toml:"grid_pos"`
}

// ReadDocument loads a dashboard document from disk, picking the decoder from the extension.
func ReadDocument(path string) (*DashboardDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashgrid: open document %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeDocument(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("dashgrid: decode document %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeDocument reads a dashboard document from any reader. Unknown fields are rejected.
func DecodeDocument(r io.Reader, format Format) (*DashboardDocument, error) {
	var doc DashboardDocument
	var err error
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&doc)
	case FormatTOML:
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(&doc)
	default:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		err = decoder.Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashgrid: document is empty")
		}
		return nil, fmt.Errorf("dashgrid: parse %s document: %w", format, err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeDocument writes the document as YAML.
func EncodeDocument(w io.Writer, doc *DashboardDocument) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashgrid: write document: %w", err)
	}
	return encoder.Close()
}

// Validate ensures the document satisfies required fields.
func (doc *DashboardDocument) Validate() error {
	if doc.Version != documentVersionV1 {
		return fmt.Errorf("dashgrid: unsupported document version %q", doc.Version)
	}
	if doc.ID == "" {
		return fmt.Errorf("dashgrid: document is missing id")
	}
	seen := make(map[string]struct{}, len(doc.Panels))
	for idx, panel := range doc.Panels {
		if panel.GridPos.X < 0 || panel.GridPos.Y < 0 || panel.GridPos.W < 0 || panel.GridPos.H < 0 {
			return fmt.Errorf("dashgrid: panel at index %d has a negative grid_pos", idx)
		}
		if panel.Key == "" {
			continue
		}
		if _, exists := seen[panel.Key]; exists {
			return fmt.Errorf("dashgrid: document duplicates panel key %s", panel.Key)
		}
		seen[panel.Key] = struct{}{}
	}
	return nil
}

func (doc *DashboardDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = documentVersionV1
	}
	if doc.Panels == nil {
		doc.Panels = []PanelDocument{}
	}
}

// Settings returns base with the document's grid overrides applied.
func (doc *DashboardDocument) Settings(base Settings) Settings {
	if doc.Grid == nil {
		return base
	}
	return base.Override(*doc.Grid)
}

// Dashboard converts the document into the panel model.
func (doc *DashboardDocument) Dashboard() Dashboard {
	d := Dashboard{
		ID:        doc.ID,
		Title:     doc.Title,
		SidePanel: doc.SidePanel,
		Tabs:      doc.Tabs,
		Panels:    make([]Panel, 0, len(doc.Panels)),
	}
	if doc.Grid != nil {
		grid := *doc.Grid
		d.Grid = &grid
	}
	for _, p := range doc.Panels {
		d.Panels = append(d.Panels, Panel{
			ID:       p.ID,
			Key:      p.Key,
			Title:    p.Title,
			GridPos:  p.GridPos,
			Floating: p.Floating,
			Kind:     ParsePanelKind(p.Type, p.Collapsed),
		})
	}
	EnsurePanelKeys(&d)
	return d
}

// DocumentFromDashboard converts the panel model back into a document.
func DocumentFromDashboard(d Dashboard) *DashboardDocument {
	doc := &DashboardDocument{
		Version:   DocumentVersion,
		ID:        d.ID,
		Title:     d.Title,
		SidePanel: d.SidePanel,
		Tabs:      d.Tabs,
		Panels:    make([]PanelDocument, 0, len(d.Panels)),
	}
	if d.Grid != nil {
		grid := *d.Grid
		doc.Grid = &grid
	}
	for _, p := range d.Panels {
		entry := PanelDocument{
			ID:       p.ID,
			Key:      p.Key,
			Title:    p.Title,
			Floating: p.Floating,
			GridPos:  p.GridPos,
		}
		switch k := p.kind().(type) {
		case RowKind:
			entry.Type = kindRow
			entry.Collapsed = k.Collapsed
		case AddPanelKind:
			entry.Type = kindAddPanel
		case ContentKind:
			entry.Type = k.Plugin
		}
		doc.Panels = append(doc.Panels, entry)
	}
	return doc
}
