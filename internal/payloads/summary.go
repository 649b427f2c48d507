package payloads

import (
	"fmt"

	"github.com/plotforge/plotforge/internal/chartdoc"
)

// SeriesSummary describes one series inside a chart options tree.
type SeriesSummary struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Color      any    `json:"color"`
	DashStyle  any    `json:"dashStyle"`
	DataLabels bool   `json:"dataLabels"`
}

// Summary captures the headline shape of a chart options tree.
type Summary struct {
	ChartKind   string          `json:"chart_type"`
	SeriesCount int             `json:"series_count"`
	Series      []SeriesSummary `json:"series"`
}

// Summarize reduces an options tree to its chart kind and per-series
// styling. Series entries that are not mappings still count toward the
// total but get no summary row.
func Summarize(options chartdoc.Document) Summary {
	kind := chartdoc.ChartKind(options)
	series := chartdoc.SeriesList(options)

	summary := Summary{
		ChartKind:   kind,
		SeriesCount: len(series),
		Series:      make([]SeriesSummary, 0, len(series)),
	}
	if summary.ChartKind == "" {
		summary.ChartKind = "unknown"
	}

	for idx, entry := range series {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			name = fmt.Sprintf("Series %d", idx+1)
		}
		typ, _ := m["type"].(string)
		if typ == "" {
			typ = kind
		}
		summary.Series = append(summary.Series, SeriesSummary{
			Index:      idx,
			Name:       name,
			Type:       typ,
			Color:      m["color"],
			DashStyle:  m["dashStyle"],
			DataLabels: truthy(m["dataLabels"]),
		})
	}
	return summary
}

// truthy mirrors the loose boolean reading used for dataLabels flags:
// empty containers, empty strings, zero numbers, and nil all read false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
