package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plotforge/plotforge/internal/editable"
	"github.com/plotforge/plotforge/internal/payloads"
)

// DescribeSkill summarizes a stored chart payload and lists its editable
// properties.
type DescribeSkill struct {
	store   payloads.Store
	logger  *slog.Logger
	metrics *payloads.Metrics
}

// NewDescribeSkill creates a describe skill.
func NewDescribeSkill(deps Deps) *DescribeSkill {
	return &DescribeSkill{
		store:   deps.Store,
		logger:  deps.logger(),
		metrics: deps.Metrics,
	}
}

func (s *DescribeSkill) Name() string { return "describe_chart" }

func (s *DescribeSkill) Description() string {
	return "Summarize an existing Highcharts payload and highlight editable properties."
}

func (s *DescribeSkill) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        "saved_payload_id",
			Description: "Identifier returned when the chart payload was stored.",
			Required:    true,
		},
	}
}

func (s *DescribeSkill) Schema() json.RawMessage {
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

func (s *DescribeSkill) Execute(ctx context.Context, params json.RawMessage) (*Output, error) {
	var input struct {
		SavedPayloadID string `json:"saved_payload_id"`
	}
	if err := json.Unmarshal(params, &input); err != nil {
		return skillError(fmt.Sprintf("Invalid parameters: %v", err)), nil
	}
	id := strings.TrimSpace(input.SavedPayloadID)
	if id == "" {
		return skillError("A saved payload ID is required to describe a chart."), nil
	}

	payload, err := s.store.Load(ctx, id)
	if err != nil {
		return skillError(loadFailureMessage(id, err)), nil
	}
	s.metrics.RecordLoad()

	options := payloads.Options(payload)
	summary := payloads.Summarize(options)
	fields := editable.Fields(options)

	lines := []string{
		fmt.Sprintf("Chart type: %s", summary.ChartKind),
		fmt.Sprintf("Series count: %d", summary.SeriesCount),
	}
	for _, serie := range summary.Series {
		lines = append(lines, fmt.Sprintf("Series %d (%s): color=%s, dashStyle=%s",
			serie.Index, serie.Name,
			stringOr(serie.Color, "default"),
			stringOr(serie.DashStyle, "solid")))
	}

	result := map[string]any{
		"summary":         summary,
		"editable_fields": fields,
		"chart_options":   options,
	}
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return skillError(fmt.Sprintf("encode result: %v", err)), nil
	}

	s.logger.DebugContext(ctx, "described chart payload",
		"payload_id", id, "chart_type", summary.ChartKind, "series", summary.SeriesCount)
	return &Output{Text: string(text), Narrative: strings.Join(lines, "\n")}, nil
}

func stringOr(v any, fallback string) string {
	s, _ := v.(string)
	if s == "" {
		return fallback
	}
	return s
}
