package dashgrid

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateGridConfig reports caller-side misconfiguration. The coordinate
// functions never call it; integration boundaries do.
func ValidateGridConfig(cfg GridConfig) error {
	var errs []error
	if cfg.Columns <= 0 {
		errs = append(errs, fmt.Errorf("columns must be positive, got %d", cfg.Columns))
	}
	if cfg.MaxRows <= 0 {
		errs = append(errs, fmt.Errorf("max rows must be positive, got %d", cfg.MaxRows))
	}
	if math.IsNaN(cfg.ContainerWidth) || math.IsInf(cfg.ContainerWidth, 0) {
		errs = append(errs, fmt.Errorf("container width must be finite"))
	}
	for name, v := range map[string]float64{
		"row height":          cfg.RowHeight,
		"margin x":            cfg.Margin.X,
		"margin y":            cfg.Margin.Y,
		"container padding x": cfg.ContainerPadding.X,
		"container padding y": cfg.ContainerPadding.Y,
		"container width":     cfg.ContainerWidth,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	if cfg.RowHeight == 0 {
		errs = append(errs, fmt.Errorf("row height must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("dashgrid: invalid grid config: %w", err)
	}
	return nil
}

// ValidateSettings checks static settings with a zero container width.
func ValidateSettings(s Settings) error {
	return ValidateGridConfig(s.GridConfig(0))
}

// DocumentValidator validates decoded dashboard documents against a JSON schema.
type DocumentValidator interface {
	ValidateDocument(doc *DashboardDocument) error
}

// JSONSchemaValidator compiles the document schema once and validates documents.
type JSONSchemaValidator struct {
	mu       sync.Mutex
	schema   map[string]any
	compiled *jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator for the default document schema.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{schema: DocumentSchema()}
}

// ValidateDocument normalizes the document to JSON and validates it.
func (v *JSONSchemaValidator) ValidateDocument(doc *DashboardDocument) error {
	if doc == nil {
		return fmt.Errorf("dashgrid: document is nil")
	}
	schema, err := v.compile()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("dashgrid: marshal document %s: %w", doc.ID, err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashgrid: normalize document %s: %w", doc.ID, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashgrid: document %s failed validation: %w", doc.ID, err)
	}
	return nil
}

func (v *JSONSchemaValidator) compile() (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.compiled != nil {
		return v.compiled, nil
	}
	data, err := json.Marshal(v.schema)
	if err != nil {
		return nil, fmt.Errorf("dashgrid: marshal document schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	const name = "dashboard-document.json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashgrid: load document schema: %w", err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashgrid: compile document schema: %w", err)
	}
	v.compiled = compiled
	return compiled, nil
}

// DocumentSchema returns the JSON schema for dashboard documents.
func DocumentSchema() map[string]any {
	nonNegative := map[string]any{"type": "integer", "minimum": 0}
	return map[string]any{
		"type":     "object",
		"required": []string{"version", "id", "panels"},
		"properties": map[string]any{
			"version": map[string]any{"type": "string", "enum": []string{DocumentVersion}},
			"id":      map[string]any{"type": "string", "minLength": 1},
			"panels": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"grid_pos"},
					"properties": map[string]any{
						"grid_pos": map[string]any{
							"type":     "object",
							"required": []string{"x", "y", "w", "h"},
							"properties": map[string]any{
								"x": nonNegative,
								"y": nonNegative,
								"w": nonNegative,
								"h": nonNegative,
							},
						},
					},
				},
			},
			"grid": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"columns":  nonNegative,
					"max_rows": nonNegative,
				},
			},
		},
	}
}
