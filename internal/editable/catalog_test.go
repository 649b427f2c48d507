package editable

import (
	"errors"
	"testing"

	"github.com/plotforge/plotforge/internal/chartdoc"
	"github.com/plotforge/plotforge/internal/chartpath"
)

func mustParse(t *testing.T, raw string) chartpath.Path {
	t.Helper()
	p, err := chartpath.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", raw, err)
	}
	return p
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		chartKind string
		wantOK    bool
	}{
		{"global path any kind", "title.text", "area", true},
		{"global path unknown kind", "legend.enabled", "heatmap", true},
		{"global path empty kind", "chart.backgroundColor", "", true},
		{"series path", "series[0].color", "line", true},
		{"series path high index", "series[9].dashStyle", "line", true},
		{"kind specific allowed", "plotOptions.area.fillOpacity", "area", true},
		{"kind specific wrong kind", "plotOptions.area.fillOpacity", "line", false},
		{"pie only for pie", "plotOptions.pie.innerSize", "pie", true},
		{"pie rejected elsewhere", "plotOptions.pie.innerSize", "column", false},
		{"unknown series field", "series[0].unknownField", "area", false},
		{"arbitrary path", "credits.enabled", "line", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustParse(t, tt.path), tt.chartKind)
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Validate(%q, %q) error: %v", tt.path, tt.chartKind, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate(%q, %q) succeeded, want NotEditableError", tt.path, tt.chartKind)
			}
			var neErr *NotEditableError
			if !errors.As(err, &neErr) {
				t.Fatalf("error type = %T, want *NotEditableError", err)
			}
			if neErr.ChartKind != tt.chartKind {
				t.Fatalf("error chart kind = %q, want %q", neErr.ChartKind, tt.chartKind)
			}
		})
	}
}

func TestValidateReportsPattern(t *testing.T) {
	err := Validate(mustParse(t, "series[3].unknownField"), "area")
	var neErr *NotEditableError
	if !errors.As(err, &neErr) {
		t.Fatalf("error type = %T, want *NotEditableError", err)
	}
	if neErr.Pattern != "series[].unknownField" {
		t.Fatalf("pattern = %q, want series[].unknownField", neErr.Pattern)
	}
}

func TestPatternsTiers(t *testing.T) {
	base := Patterns("")
	if len(base) != len(globalTemplates)+len(seriesTemplates) {
		t.Fatalf("base pattern count = %d, want %d", len(base), len(globalTemplates)+len(seriesTemplates))
	}
	area := Patterns("area")
	if len(area) != len(base)+len(chartKindTemplates["area"]) {
		t.Fatalf("area pattern count = %d, want %d", len(area), len(base)+len(chartKindTemplates["area"]))
	}
	if _, ok := area["plotOptions.area.fillOpacity"]; !ok {
		t.Fatal("area tier missing fillOpacity pattern")
	}
	if _, ok := base["series[].color"]; !ok {
		t.Fatal("series tier missing abstracted color pattern")
	}
}

func TestFieldsExpansion(t *testing.T) {
	doc := chartdoc.Document{
		"chart": map[string]any{"type": "column"},
		"series": []any{
			map[string]any{"name": "Sales"},
			"not a mapping",
			map[string]any{"name": "Costs"},
		},
	}
	fields := Fields(doc)

	want := len(globalTemplates) + len(chartKindTemplates["column"]) + 2*len(seriesTemplates)
	if len(fields) != want {
		t.Fatalf("field count = %d, want %d", len(fields), want)
	}

	paths := make(map[string]string, len(fields))
	for _, f := range fields {
		paths[f.Path] = f.Description
	}
	if desc := paths["series[0].color"]; desc != "Series color" {
		t.Fatalf("series[0].color description = %q", desc)
	}
	if desc := paths["series[2].name"]; desc != "Series display name" {
		t.Fatalf("series[2].name description = %q", desc)
	}
	if _, ok := paths["series[1].name"]; ok {
		t.Fatal("non-mapping series entry expanded")
	}
	if _, ok := paths["plotOptions.column.borderRadius"]; !ok {
		t.Fatal("column tier missing from fields")
	}
}

func TestFieldsWithoutKind(t *testing.T) {
	fields := Fields(chartdoc.Document{})
	if len(fields) != len(globalTemplates) {
		t.Fatalf("field count = %d, want global tier only (%d)", len(fields), len(globalTemplates))
	}
}
