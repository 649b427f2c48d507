package payloads

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one action taken against a payload.
type HistoryEntry struct {
	ID        string         `json:"id"`
	Timestamp string         `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
}

// EnsureMeta returns the payload's meta mapping, creating it when missing.
// A non-mapping meta value is preserved under a "note" key, and the history
// list is present afterwards.
func EnsureMeta(p Payload) map[string]any {
	meta, ok := p["meta"].(map[string]any)
	if !ok {
		meta = map[string]any{}
		if existing, present := p["meta"]; present && existing != nil {
			meta["note"] = fmt.Sprint(existing)
		}
		p["meta"] = meta
	}
	if _, ok := meta["history"]; !ok {
		meta["history"] = []any{}
	}
	return meta
}

// AppendHistory stamps an entry with an ID and UTC timestamp when they are
// missing and appends it to the payload's history list. A history value that
// is not a list is replaced.
func AppendHistory(p Payload, entry HistoryEntry) {
	meta := EnsureMeta(p)
	history, _ := meta["history"].([]any)
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	record := map[string]any{
		"id":        entry.ID,
		"timestamp": entry.Timestamp,
		"actor":     entry.Actor,
		"action":    entry.Action,
	}
	if len(entry.Details) > 0 {
		record["details"] = entry.Details
	}
	meta["history"] = append(history, record)
}
