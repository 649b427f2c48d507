// Package chartdoc models chart option documents as JSON-shaped trees and
// implements the structural get/set walk used by the update pipeline.
package chartdoc

import (
	"fmt"
	"time"
)

// Document is the root of a chart option tree. Nodes below the root are drawn
// from the closed set {map[string]any, []any, scalar}.
type Document map[string]any

// Kind classifies a node of the document tree.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// KindOf reports the kind of a node.
func KindOf(node any) Kind {
	switch node.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

// Normalize rebuilds decoder output into the closed node set. Mapping keys
// become strings (YAML decoders can produce map[any]any nodes), nested
// containers are rebuilt recursively, and YAML timestamp scalars become
// RFC 3339 strings so documents stay JSON-shaped. Other scalars pass
// through unchanged.
func Normalize(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = Normalize(val)
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return v
	}
}

// NormalizeDocument normalizes a decoded value and asserts it is a mapping
// root. The second result is false for scalar or sequence roots.
func NormalizeDocument(node any) (Document, bool) {
	m, ok := Normalize(node).(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(m), true
}

// Clone returns a deep copy of the document. Mutating the copy never affects
// the original.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	return Document(cloneNode(map[string]any(doc)).(map[string]any))
}

func cloneNode(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = cloneNode(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = cloneNode(val)
		}
		return out
	default:
		return v
	}
}

// ChartKind returns the document's declared chart type, or "" when none is
// set.
func ChartKind(doc Document) string {
	chart, ok := doc["chart"].(map[string]any)
	if !ok {
		return ""
	}
	kind, _ := chart["type"].(string)
	return kind
}

// SeriesList returns the document's series entries, or nil when the document
// has no series sequence.
func SeriesList(doc Document) []any {
	seq, _ := doc["series"].([]any)
	return seq
}
