// Package chartedit applies explicit and instruction-derived updates to chart
// documents in order, validating each path against the editable-field
// allow-list before writing.
package chartedit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/plotforge/plotforge/internal/chartdoc"
	"github.com/plotforge/plotforge/internal/chartpath"
	"github.com/plotforge/plotforge/internal/editable"
	"github.com/plotforge/plotforge/internal/instruct"
)

// ErrNoUpdates is returned by Apply when neither the explicit updates nor the
// instruction text produced anything to do.
var ErrNoUpdates = errors.New("chartedit: no updates to apply")

// Change records one applied update. Before is nil when the path had no value
// yet.
type Change struct {
	Path   string `json:"path"`
	Before any    `json:"before"`
	After  any    `json:"after"`
}

// Editor orchestrates update application against a document.
type Editor struct {
	logger *slog.Logger
}

// NewEditor returns an Editor. A nil logger falls back to slog.Default().
func NewEditor(logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{logger: logger}
}

// Apply normalizes the explicit updates, appends updates translated from the
// instruction text, and applies the merged list in order. Each update is
// validated against the document's chart kind before writing; the first
// failure aborts the run and is returned as-is. Writes already made stay in
// the document, so callers must treat it as uncommitted on error.
func (e *Editor) Apply(ctx context.Context, doc chartdoc.Document, explicit any, instructions string) ([]Change, error) {
	updates := NormalizeUpdates(explicit)
	if instructions != "" {
		updates = append(updates, instruct.Translate(instructions, doc)...)
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}

	chartKind := chartdoc.ChartKind(doc)
	changes := make([]Change, 0, len(updates))
	for _, update := range updates {
		if update.Path == "" {
			continue
		}
		path, err := chartpath.Parse(update.Path)
		if err != nil {
			return nil, err
		}
		if err := editable.Validate(path, chartKind); err != nil {
			return nil, err
		}
		before, _ := chartdoc.Get(doc, path)
		if _, _, err := chartdoc.Set(doc, path, update.Value); err != nil {
			return nil, err
		}
		changes = append(changes, Change{Path: update.Path, Before: before, After: update.Value})
		e.logger.DebugContext(ctx, "applied chart update", "path", update.Path)
	}
	return changes, nil
}
