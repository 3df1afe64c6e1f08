// internal/assistant/schemas.go
package assistant

import (
	"fmt"

	"listing-assistant/internal/common/validation"
	"listing-assistant/pkg/registry"
)

const envelopeSchemaName = "envelope"

const envelopeSchema = `{
  "type": "object",
  "properties": {
    "action": {},
    "data": {"type": ["object", "null"]}
  }
}`

// compileSchemas builds the envelope schema plus one data schema per action
// in reg. Every Action must have a registry entry.
func compileSchemas(reg *registry.ActionRegistry) (*validation.SchemaSet, error) {
	docs, err := reg.Schemas()
	if err != nil {
		return nil, err
	}
	for _, a := range allActions {
		if _, ok := docs[string(a)]; !ok {
			return nil, fmt.Errorf("registry has no schema for action %q", a)
		}
	}
	docs[envelopeSchemaName] = envelopeSchema
	return validation.Compile(docs)
}
