package payloads

import (
	"testing"
	"time"
)

func TestEnsureMetaCreatesHistory(t *testing.T) {
	payload := Payload{}
	meta := EnsureMeta(payload)

	if _, ok := meta["history"].([]any); !ok {
		t.Fatalf("expected history list, got %T", meta["history"])
	}
	if _, ok := payload["meta"].(map[string]any); !ok {
		t.Fatal("expected meta to be attached to the payload")
	}
}

func TestEnsureMetaKeepsScalarAsNote(t *testing.T) {
	payload := Payload{"meta": "created by importer"}
	meta := EnsureMeta(payload)

	if meta["note"] != "created by importer" {
		t.Fatalf("expected scalar meta preserved as note, got %v", meta["note"])
	}
	if _, ok := meta["history"].([]any); !ok {
		t.Fatal("expected history list alongside note")
	}
}

func TestAppendHistoryStampsEntries(t *testing.T) {
	payload := Payload{}
	AppendHistory(payload, HistoryEntry{Actor: "Data Explorer", Action: "initial_save"})

	history := payload["meta"].(map[string]any)["history"].([]any)
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	record := history[0].(map[string]any)
	if record["actor"] != "Data Explorer" || record["action"] != "initial_save" {
		t.Fatalf("unexpected entry: %v", record)
	}
	if id, _ := record["id"].(string); id == "" {
		t.Error("expected a generated entry ID")
	}
	ts, _ := record["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", ts, err)
	}
	if _, ok := record["details"]; ok {
		t.Error("expected empty details to be omitted")
	}
}

func TestAppendHistoryKeepsProvidedStamps(t *testing.T) {
	payload := Payload{}
	AppendHistory(payload, HistoryEntry{
		ID:        "entry-1",
		Timestamp: "2026-01-02T03:04:05Z",
		Actor:     "Customize Chart",
		Action:    "apply_updates",
		Details:   map[string]any{"instructions": "make it red"},
	})

	record := payload["meta"].(map[string]any)["history"].([]any)[0].(map[string]any)
	if record["id"] != "entry-1" || record["timestamp"] != "2026-01-02T03:04:05Z" {
		t.Fatalf("expected provided stamps kept, got %v", record)
	}
	details := record["details"].(map[string]any)
	if details["instructions"] != "make it red" {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestAppendHistoryReplacesNonListHistory(t *testing.T) {
	payload := Payload{"meta": map[string]any{"history": "corrupt"}}
	AppendHistory(payload, HistoryEntry{Actor: "Customize Chart", Action: "apply_updates"})

	history := payload["meta"].(map[string]any)["history"].([]any)
	if len(history) != 1 {
		t.Fatalf("expected corrupt history replaced, got %v", history)
	}
}

func TestAppendHistoryAccumulates(t *testing.T) {
	payload := Payload{}
	AppendHistory(payload, HistoryEntry{Actor: "Data Explorer", Action: "initial_save"})
	AppendHistory(payload, HistoryEntry{Actor: "Customize Chart", Action: "apply_updates"})

	history := payload["meta"].(map[string]any)["history"].([]any)
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	first := history[0].(map[string]any)
	second := history[1].(map[string]any)
	if first["action"] != "initial_save" || second["action"] != "apply_updates" {
		t.Fatalf("entries out of order: %v", history)
	}
}
