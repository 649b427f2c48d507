package chartedit

import (
	"reflect"
	"testing"

	"github.com/plotforge/plotforge/internal/instruct"
)

func TestNormalizeUpdatesJSONObject(t *testing.T) {
	got := NormalizeUpdates(`{"series[0].color": "#ff0000", "legend.enabled": false}`)
	want := []instruct.Update{
		{Path: "legend.enabled", Value: false},
		{Path: "series[0].color", Value: "#ff0000"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("updates = %v, want %v (object entries ordered by path)", got, want)
	}
}

func TestNormalizeUpdatesRecordList(t *testing.T) {
	got := NormalizeUpdates(`[
		{"path": "title.text", "value": "Revenue"},
		{"path": "legend.enabled", "value": true}
	]`)
	want := []instruct.Update{
		{Path: "title.text", Value: "Revenue"},
		{Path: "legend.enabled", Value: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("updates = %v, want %v", got, want)
	}
}

func TestNormalizeUpdatesPairList(t *testing.T) {
	got := NormalizeUpdates(`[["title.text", "Revenue"], ["series[0].lineWidth", 3]]`)
	want := []instruct.Update{
		{Path: "title.text", Value: "Revenue"},
		{Path: "series[0].lineWidth", Value: float64(3)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("updates = %v, want %v", got, want)
	}
}

func TestNormalizeUpdatesKeyValueLines(t *testing.T) {
	raw := `
# styling pass
title.text = Quarterly Revenue
legend.enabled = true
not a real line
series[0].color = "#00ff00"
`
	got := NormalizeUpdates(raw)
	want := []instruct.Update{
		{Path: "title.text", Value: "Quarterly Revenue"},
		{Path: "legend.enabled", Value: true},
		{Path: "series[0].color", Value: "#00ff00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("updates = %v, want %v", got, want)
	}
}

func TestNormalizeUpdatesJSON5(t *testing.T) {
	got := NormalizeUpdates(`{
		// loose syntax is fine
		'title.text': 'Hello',
	}`)
	want := []instruct.Update{
		{Path: "title.text", Value: "Hello"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("updates = %v, want %v", got, want)
	}
}

func TestNormalizeUpdatesStructuredInputs(t *testing.T) {
	fromMap := NormalizeUpdates(map[string]any{"b.path": 2, "a.path": 1})
	if len(fromMap) != 2 || fromMap[0].Path != "a.path" || fromMap[1].Path != "b.path" {
		t.Fatalf("map normalization = %v", fromMap)
	}

	fromList := NormalizeUpdates([]any{
		map[string]any{"path": "title.text", "value": "T"},
		[]any{"legend.enabled", false},
		map[string]any{"missing": "both"},
		"junk entry",
	})
	want := []instruct.Update{
		{Path: "title.text", Value: "T"},
		{Path: "legend.enabled", Value: false},
	}
	if !reflect.DeepEqual(fromList, want) {
		t.Fatalf("list normalization = %v, want %v", fromList, want)
	}

	direct := []instruct.Update{{Path: "title.text", Value: "T"}}
	passthrough := NormalizeUpdates(direct)
	if !reflect.DeepEqual(passthrough, direct) {
		t.Fatalf("passthrough = %v, want %v", passthrough, direct)
	}
	passthrough[0].Path = "mutated"
	if direct[0].Path != "title.text" {
		t.Fatal("passthrough shares backing array with caller slice")
	}
}

func TestNormalizeUpdatesEmptyInputs(t *testing.T) {
	if got := NormalizeUpdates(nil); got != nil {
		t.Fatalf("nil input = %v", got)
	}
	if got := NormalizeUpdates(""); got != nil {
		t.Fatalf("empty string = %v", got)
	}
	if got := NormalizeUpdates("   \n  "); got != nil {
		t.Fatalf("blank string = %v", got)
	}
	if got := NormalizeUpdates(42); got != nil {
		t.Fatalf("scalar input = %v", got)
	}
	if got := NormalizeUpdates(`"just a string"`); got != nil {
		t.Fatalf("JSON scalar input = %v", got)
	}
}
