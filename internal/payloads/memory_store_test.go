package payloads

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	payload := Payload{
		"type": "highcharts",
		"data": map[string]any{"chart": map[string]any{"type": "line"}},
	}

	id, err := store.Save(ctx, "", payload)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated ID")
	}

	loaded, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded["type"] != "highcharts" {
		t.Fatalf("unexpected payload: %v", loaded)
	}

	loaded["data"].(map[string]any)["chart"].(map[string]any)["type"] = "bar"
	again, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if kind := again["data"].(map[string]any)["chart"].(map[string]any)["type"]; kind != "line" {
		t.Fatalf("store shares storage with callers, got %v", kind)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Save(ctx, "chart-1", Payload{"data": map[string]any{"v": 1}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id != "chart-1" {
		t.Fatalf("expected provided ID kept, got %q", id)
	}

	if _, err := store.Save(ctx, "chart-1", Payload{"data": map[string]any{"v": 2}}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	loaded, err := store.Load(ctx, "chart-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if v := loaded["data"].(map[string]any)["v"]; v != 2 {
		t.Fatalf("expected overwritten payload, got %v", v)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Load(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty ID, got %v", err)
	}
	if err := store.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Save(ctx, "", Payload{"data": map[string]any{}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreRejectsNilPayload(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Save(context.Background(), "", nil); !errors.Is(err, ErrPersistFailure) {
		t.Fatalf("expected ErrPersistFailure, got %v", err)
	}
}

func TestMemoryStoreInvalidEnvelopeOnLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Save(ctx, "", Payload{"data": "junk"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Load(ctx, id); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestMemoryStoreDeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SetNowFunc(func() time.Time { return current })

	oldID, err := store.Save(ctx, "", Payload{"data": map[string]any{}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	current = current.Add(48 * time.Hour)
	newID, err := store.Save(ctx, "", Payload{"data": map[string]any{}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	removed, err := store.DeleteOlderThan(ctx, current.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := store.Load(ctx, oldID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old payload gone, got %v", err)
	}
	if _, err := store.Load(ctx, newID); err != nil {
		t.Fatalf("expected new payload kept: %v", err)
	}
}
