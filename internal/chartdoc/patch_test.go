package chartdoc

import (
	"errors"
	"reflect"
	"testing"

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

func TestSetThenGet(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
	}{
		{"top level field", "title.text", "Quarterly Revenue"},
		{"deep mapping", "plotOptions.series.dataLabels.enabled", true},
		{"series element", "series[0].color", "#FF0000"},
		{"nested under index", "series[1].dataLabels.style.fontSize", "12px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{}
			path := mustParse(t, tt.path)
			if _, _, err := Set(doc, path, tt.value); err != nil {
				t.Fatalf("Set(%q) error: %v", tt.path, err)
			}
			got, ok := Get(doc, path)
			if !ok {
				t.Fatalf("Get(%q) found no value after Set", tt.path)
			}
			if !reflect.DeepEqual(got, tt.value) {
				t.Fatalf("Get(%q) = %v, want %v", tt.path, got, tt.value)
			}
		})
	}
}

func TestSetCapturesPrevious(t *testing.T) {
	doc := Document{"title": map[string]any{"text": "Before"}}
	path := mustParse(t, "title.text")

	prev, hadPrev, err := Set(doc, path, "After")
	if err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !hadPrev || prev != "Before" {
		t.Fatalf("previous = (%v, %v), want (Before, true)", prev, hadPrev)
	}

	prev, hadPrev, err = Set(doc, mustParse(t, "subtitle.text"), "New")
	if err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if hadPrev || prev != nil {
		t.Fatalf("previous for fresh path = (%v, %v), want (nil, false)", prev, hadPrev)
	}
}

func TestSetExtendsSequences(t *testing.T) {
	doc := Document{"series": []any{}}

	if _, _, err := Set(doc, mustParse(t, "series[2].name"), "Gamma"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	seq := SeriesList(doc)
	if len(seq) != 3 {
		t.Fatalf("series length = %d, want 3", len(seq))
	}
	for i := 0; i < 2; i++ {
		if _, ok := seq[i].(map[string]any); !ok {
			t.Fatalf("series[%d] = %T, want empty mapping placeholder", i, seq[i])
		}
	}

	// A final index token extends with null placeholders instead.
	prev, hadPrev, err := Set(doc, mustParse(t, "colors[1]"), "#00FF00")
	if err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !hadPrev || prev != nil {
		t.Fatalf("previous = (%v, %v), want (nil, true) from placeholder", prev, hadPrev)
	}
	colors, _ := doc["colors"].([]any)
	if len(colors) != 2 || colors[0] != nil || colors[1] != "#00FF00" {
		t.Fatalf("colors = %v, want [nil #00FF00]", colors)
	}
}

func TestSetReplacesIncompatibleNodes(t *testing.T) {
	doc := Document{
		"title":  "plain string",
		"legend": []any{"stale"},
	}

	if _, _, err := Set(doc, mustParse(t, "title.text"), "Upgraded"); err != nil {
		t.Fatalf("Set over scalar error: %v", err)
	}
	if got, ok := Get(doc, mustParse(t, "title.text")); !ok || got != "Upgraded" {
		t.Fatalf("title.text = (%v, %v) after scalar overwrite", got, ok)
	}

	if _, _, err := Set(doc, mustParse(t, "legend.enabled"), false); err != nil {
		t.Fatalf("Set over wrong-kind container error: %v", err)
	}
	if got, ok := Get(doc, mustParse(t, "legend.enabled")); !ok || got != false {
		t.Fatalf("legend.enabled = (%v, %v) after container replacement", got, ok)
	}
}

func TestSetLeadingIndexFails(t *testing.T) {
	doc := Document{"series": []any{}}
	_, _, err := Set(doc, chartpath.Path{chartpath.Index(0), chartpath.Field("name")}, "x")
	if err == nil {
		t.Fatal("Set with leading index succeeded, want ContainerError")
	}
	var cerr *ContainerError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *ContainerError", err)
	}
	if !cerr.Token.IsIndex || cerr.Found != KindMapping {
		t.Fatalf("ContainerError = %+v, want index token on mapping", cerr)
	}
}

func TestSetEmptyPath(t *testing.T) {
	if _, _, err := Set(Document{}, nil, "x"); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("error = %v, want ErrEmptyPath", err)
	}
}

func TestSetIdempotent(t *testing.T) {
	doc := Document{}
	path := mustParse(t, "series[0].lineWidth")

	if _, _, err := Set(doc, path, 3); err != nil {
		t.Fatalf("first Set error: %v", err)
	}
	prev, hadPrev, err := Set(doc, path, 3)
	if err != nil {
		t.Fatalf("second Set error: %v", err)
	}
	if !hadPrev || prev != 3 {
		t.Fatalf("second Set previous = (%v, %v), want (3, true)", prev, hadPrev)
	}
	if got, _ := Get(doc, path); got != 3 {
		t.Fatalf("final value = %v, want 3", got)
	}
}

func TestGetDistinguishesAbsentFromNull(t *testing.T) {
	doc := Document{
		"legend": nil,
		"series": []any{map[string]any{"name": "Alpha"}},
	}

	if got, ok := Get(doc, mustParse(t, "legend")); !ok || got != nil {
		t.Fatalf("stored null = (%v, %v), want (nil, true)", got, ok)
	}
	if _, ok := Get(doc, mustParse(t, "subtitle")); ok {
		t.Fatal("absent field reported as present")
	}
	if _, ok := Get(doc, mustParse(t, "series[5].name")); ok {
		t.Fatal("out-of-range index reported as present")
	}
	if _, ok := Get(doc, mustParse(t, "legend.enabled")); ok {
		t.Fatal("field walk through null reported as present")
	}
}
