package payloads

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type envelopeSchemaRegistry struct {
	once    sync.Once
	initErr error
	schema  *jsonschema.Schema
}

var envelopeSchemas envelopeSchemaRegistry

func initEnvelopeSchema() error {
	envelopeSchemas.once.Do(func() {
		compiled, err := jsonschema.CompileString("chart_payload", chartPayloadSchema)
		if err != nil {
			envelopeSchemas.initErr = err
			return
		}
		envelopeSchemas.schema = compiled
	})
	return envelopeSchemas.initErr
}

// ValidateEnvelope checks a payload envelope against the storage schema:
// "type" must be a string and "data" and "meta" must be mappings whenever
// they are present.
func ValidateEnvelope(envelope map[string]any) error {
	if err := initEnvelopeSchema(); err != nil {
		return fmt.Errorf("compile payload schema: %w", err)
	}
	if err := envelopeSchemas.schema.Validate(envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

const chartPayloadSchema = `{
  "type": "object",
  "properties": {
    "type": { "type": "string" },
    "data": { "type": "object" },
    "meta": { "type": "object" }
  },
  "additionalProperties": true
}`
