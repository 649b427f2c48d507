// Package skills implements the chart editing skills: named, parameterized
// operations over stored chart payloads.
package skills

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plotforge/plotforge/internal/payloads"
)

// Parameter describes one named skill input for discovery surfaces.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Output contains the result of a skill execution.
//
// Results are sent back to the caller which presents them to the user.
// User mistakes (missing IDs, unknown paths, malformed updates) are also
// communicated via Output with IsError=true, allowing the caller to relay
// them gracefully; Go errors are reserved for infrastructure failures.
type Output struct {
	// Text is the skill's primary output (plain text or JSON).
	Text string `json:"text"`

	// Narrative is an optional human-readable account of what happened.
	Narrative string `json:"narrative,omitempty"`

	// Visualizations contains renderable view envelopes produced by the
	// skill.
	Visualizations []map[string]any `json:"visualizations,omitempty"`

	// ExportData contains tabular exports produced by the skill.
	ExportData []map[string]any `json:"export_data,omitempty"`

	// IsError indicates this output represents an error condition.
	IsError bool `json:"is_error,omitempty"`
}

// Skill is a named chart operation executed with JSON parameters.
type Skill interface {
	// Name returns the skill name. Must be a valid function name
	// (alphanumeric, underscores).
	Name() string

	// Description returns a natural language description of what the
	// skill does.
	Description() string

	// Parameters returns the skill's named inputs for listings.
	Parameters() []Parameter

	// Schema returns the JSON Schema defining the skill's parameters.
	Schema() json.RawMessage

	// Execute runs the skill with the given JSON parameters.
	Execute(ctx context.Context, params json.RawMessage) (*Output, error)
}

// TemplateSource resolves seed templates by name.
type TemplateSource interface {
	Template(name string) (map[string]any, bool)
}

// Deps carries the collaborators shared by the chart skills.
type Deps struct {
	Store     payloads.Store
	Templates TemplateSource
	Logger    *slog.Logger
	Metrics   *payloads.Metrics
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func skillError(message string) *Output {
	return &Output{Text: message, IsError: true}
}

// loadFailureMessage turns store errors into user-facing text.
func loadFailureMessage(id string, err error) string {
	switch {
	case errors.Is(err, payloads.ErrNotFound):
		return fmt.Sprintf("No chart payload found for ID %s.", id)
	case errors.Is(err, payloads.ErrInvalidFormat):
		return fmt.Sprintf("Stored payload %s is not a chart document (%v).", id, err)
	default:
		return fmt.Sprintf("Unable to retrieve chart payload %s (%v).", id, err)
	}
}

// formatValue renders a change value for narratives.
func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}

func marshalSchema(schema map[string]any) json.RawMessage {
	payload, err := json.Marshal(schema)
	if err != nil {
		return json.RawMessage(`{"type":"object"}`)
	}
	return payload
}
