package skills

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plotforge/plotforge/internal/chartedit"
	"github.com/plotforge/plotforge/internal/payloads"
)

// CustomizeSkill applies explicit updates and natural language instructions
// to a stored chart payload and persists the result.
type CustomizeSkill struct {
	store   payloads.Store
	editor  *chartedit.Editor
	logger  *slog.Logger
	metrics *payloads.Metrics
}

// NewCustomizeSkill creates a customize skill.
func NewCustomizeSkill(deps Deps) *CustomizeSkill {
	return &CustomizeSkill{
		store:   deps.Store,
		editor:  chartedit.NewEditor(deps.Logger),
		logger:  deps.logger(),
		metrics: deps.Metrics,
	}
}

func (s *CustomizeSkill) Name() string { return "customize_chart" }

func (s *CustomizeSkill) Description() string {
	return "Apply styling updates or natural language instructions to a stored Highcharts payload."
}

func (s *CustomizeSkill) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        "saved_payload_id",
			Description: "Identifier returned when the chart payload was stored.",
			Required:    true,
		},
		{
			Name:        "updates",
			Description: "Chart updates as JSON, an array of path/value pairs, or key=value lines.",
		},
		{
			Name:        "instructions",
			Description: "Optional natural language instructions (used for history/context).",
		},
	}
}

func (s *CustomizeSkill) Schema() json.RawMessage {
	return marshalSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"saved_payload_id": map[string]any{
				"type":        "string",
				"description": "Identifier returned when the chart payload was stored.",
			},
			"updates": map[string]any{
				"description": "Chart updates as JSON, an array of path/value pairs, or key=value lines.",
			},
			"instructions": map[string]any{
				"type":        "string",
				"description": "Optional natural language instructions.",
			},
		},
		"required": []string{"saved_payload_id"},
	})
}

func (s *CustomizeSkill) Execute(ctx context.Context, params json.RawMessage) (*Output, error) {
	var input struct {
		SavedPayloadID string          `json:"saved_payload_id"`
		Updates        json.RawMessage `json:"updates"`
		Instructions   string          `json:"instructions"`
	}
	if err := json.Unmarshal(params, &input); err != nil {
		return skillError(fmt.Sprintf("Invalid parameters: %v", err)), nil
	}
	id := strings.TrimSpace(input.SavedPayloadID)
	if id == "" {
		return skillError("A saved payload ID is required to customize a chart."), nil
	}

	var rawUpdates any
	if len(input.Updates) > 0 {
		if err := json.Unmarshal(input.Updates, &rawUpdates); err != nil {
			return skillError(fmt.Sprintf("Invalid updates parameter: %v", err)), nil
		}
	}

	payload, err := s.store.Load(ctx, id)
	if err != nil {
		return skillError(loadFailureMessage(id, err)), nil
	}
	s.metrics.RecordLoad()

	options := payloads.Options(payload)
	changes, err := s.editor.Apply(ctx, options, rawUpdates, input.Instructions)
	if errors.Is(err, chartedit.ErrNoUpdates) {
		return skillError("Provide chart updates as JSON, an array of path/value pairs, key=value lines, or recognizable instructions."), nil
	}
	if err != nil {
		return skillError(err.Error()), nil
	}

	payloads.AppendHistory(payload, payloads.HistoryEntry{
		Actor:  "Customize Chart",
		Action: "apply_updates",
		Details: map[string]any{
			"instructions": input.Instructions,
			"changes":      changes,
		},
	})

	savedID, err := s.store.Save(ctx, id, payload)
	if err != nil {
		return skillError(fmt.Sprintf("Chart could not be saved (%v).", err)), nil
	}
	s.metrics.RecordSave()

	lines := make([]string, 0, len(changes))
	for _, change := range changes {
		lines = append(lines, fmt.Sprintf("%s: %s -> %s",
			change.Path, formatValue(change.Before), formatValue(change.After)))
	}

	result := map[string]any{
		"saved_payload_id": savedID,
		"changes":          changes,
		"chart_options":    options,
	}
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return skillError(fmt.Sprintf("encode result: %v", err)), nil
	}

	s.logger.InfoContext(ctx, "customized chart payload",
		"payload_id", savedID, "changes", len(changes))
	return &Output{Text: string(text), Narrative: strings.Join(lines, "\n")}, nil
}
