package skills

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/plotforge/plotforge/internal/payloads"
)

func TestNewDescribeSkill(t *testing.T) {
	skill := NewDescribeSkill(Deps{Store: payloads.NewMemoryStore()})
	if skill == nil {
		t.Fatal("NewDescribeSkill returned nil")
	}
	if skill.Name() != "describe_chart" {
		t.Errorf("Name() = %q, want %q", skill.Name(), "describe_chart")
	}
	if skill.Description() == "" {
		t.Error("Description() is empty")
	}
}

func TestDescribeSkill_Schema(t *testing.T) {
	skill := NewDescribeSkill(Deps{Store: payloads.NewMemoryStore()})
	var schema map[string]any
	if err := json.Unmarshal(skill.Schema(), &schema); err != nil {
		t.Fatalf("Schema() is not valid JSON: %v", err)
	}
	if schema["type"] != "object" {
		t.Errorf("schema type = %v, want object", schema["type"])
	}
}

func TestDescribeSkill_Execute(t *testing.T) {
	store := payloads.NewMemoryStore()
	id := saveChartPayload(t, store)
	skill := NewDescribeSkill(Deps{Store: store})

	params, err := json.Marshal(map[string]any{"saved_payload_id": id})
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	out, err := skill.Execute(context.Background(), params)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.IsError {
		t.Fatalf("Execute() returned error output: %s", out.Text)
	}

	for _, want := range []string{
		"Chart type: line",
		"Series count: 2",
		"Series 0 (Revenue): color=default, dashStyle=solid",
		"Series 1 (Cost): color=#00FF00, dashStyle=Dash",
	} {
		if !strings.Contains(out.Narrative, want) {
			t.Errorf("narrative missing %q:\n%s", want, out.Narrative)
		}
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out.Text), &result); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	for _, key := range []string{"summary", "editable_fields", "chart_options"} {
		if _, ok := result[key]; !ok {
			t.Errorf("result missing key %q", key)
		}
	}
	fields, ok := result["editable_fields"].([]any)
	if !ok || len(fields) == 0 {
		t.Fatalf("editable_fields = %v, want non-empty list", result["editable_fields"])
	}
	first, ok := fields[0].(map[string]any)
	if !ok {
		t.Fatalf("editable field entry = %T, want object", fields[0])
	}
	if _, ok := first["path"]; !ok {
		t.Error("editable field entry missing path")
	}
}

func TestDescribeSkill_Execute_InvalidParams(t *testing.T) {
	skill := NewDescribeSkill(Deps{Store: payloads.NewMemoryStore()})
	out, err := skill.Execute(context.Background(), json.RawMessage(`{invalid`))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if !out.IsError {
		t.Error("expected error output for invalid params")
	}
}

func TestDescribeSkill_Execute_MissingID(t *testing.T) {
	skill := NewDescribeSkill(Deps{Store: payloads.NewMemoryStore()})
	out, err := skill.Execute(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if !out.IsError {
		t.Fatal("expected error output for missing ID")
	}
	if !strings.Contains(out.Text, "required") {
		t.Errorf("Text = %q, want mention of required ID", out.Text)
	}
}

func TestDescribeSkill_Execute_UnknownID(t *testing.T) {
	skill := NewDescribeSkill(Deps{Store: payloads.NewMemoryStore()})
	out, err := skill.Execute(context.Background(), json.RawMessage(`{"saved_payload_id":"missing"}`))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if !out.IsError {
		t.Fatal("expected error output for unknown ID")
	}
	if out.Text != "No chart payload found for ID missing." {
		t.Errorf("Text = %q", out.Text)
	}
}
