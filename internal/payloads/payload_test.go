package payloads

import (
	"errors"
	"testing"
)

func TestOptionsSharesEnvelopeStorage(t *testing.T) {
	payload := Payload{
		"type": "highcharts",
		"data": map[string]any{"title": map[string]any{"text": "Before"}},
	}

	options := Options(payload)
	options["title"].(map[string]any)["text"] = "After"

	data := payload["data"].(map[string]any)
	if got := data["title"].(map[string]any)["text"]; got != "After" {
		t.Fatalf("expected edit to flow back into the envelope, got %v", got)
	}
}

func TestOptionsBarePayload(t *testing.T) {
	payload := Payload{"chart": map[string]any{"type": "line"}}
	options := Options(payload)
	if _, ok := options["chart"]; !ok {
		t.Fatal("expected bare payload to serve as its own options tree")
	}
}

func TestOptionsNonMappingData(t *testing.T) {
	payload := Payload{"data": "not a tree"}
	options := Options(payload)
	if options["data"] != "not a tree" {
		t.Fatal("expected fallback to the envelope itself")
	}
}

func TestCloneIndependence(t *testing.T) {
	original := Payload{
		"data": map[string]any{
			"series": []any{map[string]any{"name": "Alpha"}},
		},
	}

	copied := Clone(original)
	copied["data"].(map[string]any)["series"].([]any)[0].(map[string]any)["name"] = "Beta"

	name := original["data"].(map[string]any)["series"].([]any)[0].(map[string]any)["name"]
	if name != "Alpha" {
		t.Fatalf("clone mutated the original: %v", name)
	}

	if Clone(nil) != nil {
		t.Fatal("expected nil clone for nil payload")
	}
}

func TestDecodeEnvelope(t *testing.T) {
	payload, err := decodeEnvelope([]byte(`{"type":"highcharts","data":{"chart":{"type":"line"}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data mapping, got %T", payload["data"])
	}
	if kind := data["chart"].(map[string]any)["type"]; kind != "line" {
		t.Fatalf("expected chart type line, got %v", kind)
	}
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{"unterminated`},
		{"scalar", `42`},
		{"list", `[1, 2, 3]`},
		{"data not a mapping", `{"data": "junk"}`},
		{"meta not a mapping", `{"meta": [1]}`},
		{"type not a string", `{"type": 7}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeEnvelope([]byte(tc.raw)); !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat, got %v", err)
			}
		})
	}
}

func TestValidateEnvelopeAllowsExtraKeys(t *testing.T) {
	envelope := map[string]any{
		"type":   "highcharts",
		"data":   map[string]any{},
		"meta":   map[string]any{},
		"custom": 1,
	}
	if err := ValidateEnvelope(envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
