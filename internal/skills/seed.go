package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plotforge/plotforge/internal/chartdoc"
	"github.com/plotforge/plotforge/internal/payloads"
)

// SeedSkill persists a starter chart payload so the other skills have
// something to describe, customize, and display.
type SeedSkill struct {
	store     payloads.Store
	templates TemplateSource
	logger    *slog.Logger
	metrics   *payloads.Metrics
}

// NewSeedSkill creates a seed skill.
func NewSeedSkill(deps Deps) *SeedSkill {
	return &SeedSkill{
		store:     deps.Store,
		templates: deps.Templates,
		logger:    deps.logger(),
		metrics:   deps.Metrics,
	}
}

func (s *SeedSkill) Name() string { return "seed_chart" }

func (s *SeedSkill) Description() string {
	return "Store a starter Highcharts payload, optionally from a named seed template."
}

func (s *SeedSkill) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        "template",
			Description: "Name of a seed template to start from. Defaults to the built-in sample chart.",
		},
		{
			Name:        "saved_payload_id",
			Description: "Optional identifier to store the payload under. A new ID is generated when omitted.",
		},
	}
}

func (s *SeedSkill) Schema() json.RawMessage {
	return marshalSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"template": map[string]any{
				"type":        "string",
				"description": "Name of a seed template to start from.",
			},
			"saved_payload_id": map[string]any{
				"type":        "string",
				"description": "Optional identifier to store the payload under.",
			},
		},
	})
}

func (s *SeedSkill) Execute(ctx context.Context, params json.RawMessage) (*Output, error) {
	var input struct {
		Template       string `json:"template"`
		SavedPayloadID string `json:"saved_payload_id"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &input); err != nil {
			return skillError(fmt.Sprintf("Invalid parameters: %v", err)), nil
		}
	}

	options := defaultChartTemplate()
	if name := strings.TrimSpace(input.Template); name != "" {
		if s.templates == nil {
			return skillError(fmt.Sprintf("No seed templates are configured; cannot load %q.", name)), nil
		}
		tpl, ok := s.templates.Template(name)
		if !ok {
			return skillError(fmt.Sprintf("Unknown seed template %q.", name)), nil
		}
		options = chartdoc.Clone(chartdoc.Document(tpl))
	}

	payload := payloads.Payload{
		"type": "highcharts",
		"data": map[string]any(options),
	}
	payloads.AppendHistory(payload, payloads.HistoryEntry{
		Actor:  "Seed Chart",
		Action: "initial_save",
		Details: map[string]any{
			"chart_type": chartdoc.ChartKind(options),
		},
	})

	id, err := s.store.Save(ctx, strings.TrimSpace(input.SavedPayloadID), payload)
	if err != nil {
		return skillError(fmt.Sprintf("Chart could not be saved to skill memory (%v).", err)), nil
	}
	s.metrics.RecordSave()

	s.logger.InfoContext(ctx, "seeded chart payload",
		"payload_id", id, "template", strings.TrimSpace(input.Template))
	return &Output{Text: fmt.Sprintf("Chart saved to address %s", id)}, nil
}

// defaultChartTemplate returns the built-in sample chart configuration.
func defaultChartTemplate() chartdoc.Document {
	return chartdoc.Document{
		"chart": map[string]any{
			"type": "area",
		},
		"title": map[string]any{
			"text": "Sample Highchart",
			"style": map[string]any{
				"fontSize": "20px",
			},
		},
		"xAxis": map[string]any{
			"categories": []any{"Category A", "Category B", "Category C"},
			"title":      map[string]any{"text": "Categories"},
		},
		"yAxis": map[string]any{
			"title": map[string]any{"text": "Values"},
		},
		"series": []any{
			map[string]any{
				"name": "Series 1",
				"data": []any{10, 20, 30},
			},
		},
		"credits": map[string]any{},
		"legend": map[string]any{
			"align":         "center",
			"verticalAlign": "bottom",
			"layout":        "horizontal",
		},
		"plotOptions": map[string]any{
			"column": map[string]any{
				"dataLabels": map[string]any{
					"style": map[string]any{
						"fontSize": "",
					},
				},
			},
		},
	}
}
