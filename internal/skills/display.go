package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plotforge/plotforge/internal/payloads"
)

// DisplaySkill retrieves a stored chart payload and wraps its options in a
// renderable view envelope.
type DisplaySkill struct {
	store   payloads.Store
	logger  *slog.Logger
	metrics *payloads.Metrics
}

// NewDisplaySkill creates a display skill.
func NewDisplaySkill(deps Deps) *DisplaySkill {
	return &DisplaySkill{
		store:   deps.Store,
		logger:  deps.logger(),
		metrics: deps.Metrics,
	}
}

func (s *DisplaySkill) Name() string { return "display_chart" }

func (s *DisplaySkill) Description() string {
	return "Retrieve a chart payload and present it to the user."
}

func (s *DisplaySkill) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        "saved_payload_id",
			Description: "Identifier returned when the chart payload was stored.",
			Required:    true,
		},
	}
}

func (s *DisplaySkill) Schema() json.RawMessage {
	return marshalSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"saved_payload_id": map[string]any{
				"type":        "string",
				"description": "Identifier returned when the chart payload was stored.",
			},
		},
		"required": []string{"saved_payload_id"},
	})
}

func (s *DisplaySkill) Execute(ctx context.Context, params json.RawMessage) (*Output, error) {
	var input struct {
		SavedPayloadID string `json:"saved_payload_id"`
	}
	if err := json.Unmarshal(params, &input); err != nil {
		return skillError(fmt.Sprintf("Invalid parameters: %v", err)), nil
	}
	id := strings.TrimSpace(input.SavedPayloadID)
	if id == "" {
		return skillError("A saved payload ID is required to display the chart."), nil
	}

	payload, err := s.store.Load(ctx, id)
	if err != nil {
		return skillError(loadFailureMessage(id, err)), nil
	}
	s.metrics.RecordLoad()

	options := payloads.Options(payload)
	visualization := map[string]any{
		"title":  "Display Chart",
		"layout": "standard",
		"content": map[string]any{
			"type": "Document",
			"gap":  "0px",
			"style": map[string]any{
				"backgroundColor": "#ffffff",
				"width":           "100%",
				"height":          "max-content",
			},
			"children": []any{
				map[string]any{
					"name":      "HighchartsChart0",
					"type":      "HighchartsChart",
					"minHeight": "400px",
					"options":   options,
				},
			},
		},
	}

	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return skillError(fmt.Sprintf("encode result: %v", err)), nil
	}

	s.logger.DebugContext(ctx, "displayed chart payload", "payload_id", id)
	return &Output{
		Text:           string(text),
		Visualizations: []map[string]any{visualization},
	}, nil
}
