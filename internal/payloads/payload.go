// Package payloads stores Highcharts payload envelopes and the edit history
// carried in their metadata.
package payloads

import (
	"encoding/json"
	"fmt"

	"github.com/plotforge/plotforge/internal/chartdoc"
)

// Payload is a stored chart envelope: a mapping that usually wraps the chart
// options under "data" with bookkeeping under "meta". A bare options mapping
// is accepted and treated as its own options tree.
type Payload map[string]any

// Options returns the chart options tree inside the envelope. The returned
// document shares storage with the payload, so edits flow back into it.
func Options(p Payload) chartdoc.Document {
	if data, ok := p["data"].(map[string]any); ok {
		return chartdoc.Document(data)
	}
	return chartdoc.Document(p)
}

// Clone returns a deep copy of the payload.
func Clone(p Payload) Payload {
	if p == nil {
		return nil
	}
	return Payload(chartdoc.Clone(chartdoc.Document(p)))
}

// decodeEnvelope turns a stored JSON document back into a payload. Anything
// that is not a tree-shaped mapping fails with ErrInvalidFormat.
func decodeEnvelope(raw []byte) (Payload, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	doc, ok := chartdoc.NormalizeDocument(decoded)
	if !ok {
		return nil, fmt.Errorf("%w: stored value is not a mapping", ErrInvalidFormat)
	}
	if err := ValidateEnvelope(map[string]any(doc)); err != nil {
		return nil, err
	}
	return Payload(doc), nil
}
