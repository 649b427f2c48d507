// Package editable defines the allow-list of chart option paths that user
// updates may touch, tiered globally, per series, and per chart kind.
package editable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plotforge/plotforge/internal/chartdoc"
	"github.com/plotforge/plotforge/internal/chartpath"
)

// Field describes one editable path for user-facing listings.
type Field struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

type template struct {
	path        string
	description string
}

var globalTemplates = []template{
	{"title.text", "Chart title text"},
	{"title.style.color", "Title font color"},
	{"subtitle.text", "Subtitle text"},
	{"subtitle.style.color", "Subtitle font color"},
	{"chart.backgroundColor", "Chart background color"},
	{"xAxis.title.text", "X-axis title"},
	{"xAxis.labels.style", "X-axis label styles"},
	{"yAxis.title.text", "Y-axis title"},
	{"yAxis.labels.style", "Y-axis label styles"},
	{"legend", "Legend configuration"},
	{"legend.enabled", "Toggle legend visibility"},
	{"plotOptions.series.dataLabels", "Global data label options"},
	{"plotOptions.series.dataLabels.enabled", "Enable global data labels"},
	{"plotOptions.series.dataLabels.style", "Global data label style"},
	{"plotOptions.series.marker.enabled", "Global marker visibility"},
}

var seriesTemplates = []template{
	{"series[{index}].name", "Series display name"},
	{"series[{index}].color", "Series color"},
	{"series[{index}].dashStyle", "Series line/dash style"},
	{"series[{index}].lineWidth", "Series line width"},
	{"series[{index}].dataLabels.enabled", "Enable series data labels"},
	{"series[{index}].dataLabels.format", "Series data label format"},
	{"series[{index}].dataLabels.style", "Series data label style"},
	{"series[{index}].marker.enabled", "Series marker visibility"},
	{"series[{index}].marker.symbol", "Series marker symbol"},
	{"series[{index}].marker.radius", "Series marker radius"},
}

var chartKindTemplates = map[string][]template{
	"column": {
		{"plotOptions.column.colorByPoint", "Color each column by point"},
		{"plotOptions.column.dataLabels.enabled", "Enable column data labels"},
		{"plotOptions.column.dataLabels.style.fontSize", "Column data label font size"},
		{"plotOptions.column.borderRadius", "Column border radius"},
	},
	"bar": {
		{"plotOptions.bar.dataLabels.enabled", "Enable bar data labels"},
		{"plotOptions.bar.dataLabels.style.fontSize", "Bar data label font size"},
		{"plotOptions.bar.borderRadius", "Bar border radius"},
	},
	"area": {
		{"plotOptions.area.fillOpacity", "Area fill opacity"},
		{"plotOptions.area.marker.enabled", "Area marker visibility"},
	},
	"areaspline": {
		{"plotOptions.areaspline.fillOpacity", "Areaspline fill opacity"},
		{"plotOptions.areaspline.marker.enabled", "Areaspline marker visibility"},
	},
	"line": {
		{"plotOptions.line.marker.enabled", "Line marker visibility"},
	},
	"spline": {
		{"plotOptions.spline.marker.enabled", "Spline marker visibility"},
	},
	"pie": {
		{"plotOptions.pie.dataLabels.enabled", "Pie data label toggle"},
		{"plotOptions.pie.dataLabels.distance", "Pie data label distance"},
		{"plotOptions.pie.innerSize", "Pie inner size (donut)"},
		{"plotOptions.pie.showInLegend", "Show pie slices in legend"},
	},
	"scatter": {
		{"plotOptions.scatter.marker.symbol", "Scatter marker symbol"},
		{"plotOptions.scatter.marker.radius", "Scatter marker radius"},
		{"plotOptions.scatter.marker.fillColor", "Scatter marker fill color"},
	},
	"bubble": {
		{"plotOptions.bubble.minSize", "Bubble min size"},
		{"plotOptions.bubble.maxSize", "Bubble max size"},
	},
}

// NotEditableError reports a path pattern outside the allow-list for the
// active chart kind.
type NotEditableError struct {
	Pattern   string
	ChartKind string
}

func (e *NotEditableError) Error() string {
	kind := e.ChartKind
	if kind == "" {
		kind = "generic"
	}
	return fmt.Sprintf("editable: path %q is not editable for chart kind %q", e.Pattern, kind)
}

// Patterns returns the index-abstracted path patterns editable for the chart
// kind. Unknown or empty kinds fall back to the global and per-series tiers.
func Patterns(chartKind string) map[string]struct{} {
	patterns := make(map[string]struct{}, len(globalTemplates)+len(seriesTemplates)+8)
	for _, t := range globalTemplates {
		patterns[abstract(t.path)] = struct{}{}
	}
	for _, t := range seriesTemplates {
		patterns[abstract(t.path)] = struct{}{}
	}
	for _, t := range chartKindTemplates[chartKind] {
		patterns[abstract(t.path)] = struct{}{}
	}
	return patterns
}

func abstract(tpl string) string {
	return strings.ReplaceAll(tpl, "[{index}]", "[]")
}

// Validate checks a parsed path against the allow-list for the chart kind.
func Validate(path chartpath.Path, chartKind string) error {
	pattern := path.Pattern()
	if _, ok := Patterns(chartKind)[pattern]; !ok {
		return &NotEditableError{Pattern: pattern, ChartKind: chartKind}
	}
	return nil
}

// Fields expands the catalog against a concrete document: the global tier,
// the kind-specific tier when the chart kind is known, then the per-series
// tier for each mapping-shaped series entry.
func Fields(doc chartdoc.Document) []Field {
	fields := make([]Field, 0, len(globalTemplates)+len(seriesTemplates))
	for _, t := range globalTemplates {
		fields = append(fields, Field{Path: t.path, Description: t.description})
	}
	for _, t := range chartKindTemplates[chartdoc.ChartKind(doc)] {
		fields = append(fields, Field{Path: t.path, Description: t.description})
	}
	for idx, entry := range chartdoc.SeriesList(doc) {
		if _, ok := entry.(map[string]any); !ok {
			continue
		}
		for _, t := range seriesTemplates {
			fields = append(fields, Field{
				Path:        strings.ReplaceAll(t.path, "{index}", strconv.Itoa(idx)),
				Description: t.description,
			})
		}
	}
	return fields
}
