// Package validation checks JSON payloads against compiled JSON Schemas.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// GetErrorMessages flattens the errors into "field: message" strings.
func (vr *ValidationResult) GetErrorMessages() []string {
	msgs := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return msgs
}

// HasErrors reports whether field failed validation.
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, e := range vr.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil for a valid result and a single summarizing error otherwise.
func (vr *ValidationResult) Err() error {
	if vr.Valid {
		return nil
	}
	return fmt.Errorf("validation failed: %s", strings.Join(vr.GetErrorMessages(), "; "))
}

// SchemaSet is a named collection of compiled schemas. It is immutable after
// construction and safe for concurrent use.
type SchemaSet struct {
	schemas map[string]*gojsonschema.Schema
}

// Compile builds a SchemaSet from schema documents keyed by name.
func Compile(docs map[string]string) (*SchemaSet, error) {
	set := &SchemaSet{schemas: make(map[string]*gojsonschema.Schema, len(docs))}
	for name, doc := range docs {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("compile schema %q: %w", name, err)
		}
		set.schemas[name] = schema
	}
	return set, nil
}

// Names lists the schema names in sorted order.
func (s *SchemaSet) Names() []string {
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateJSON validates a raw JSON document against the named schema.
func (s *SchemaSet) ValidateJSON(name string, doc []byte) (*ValidationResult, error) {
	return s.validate(name, gojsonschema.NewBytesLoader(doc))
}

// ValidateValue validates an already decoded Go value against the named schema.
func (s *SchemaSet) ValidateValue(name string, doc interface{}) (*ValidationResult, error) {
	return s.validate(name, gojsonschema.NewGoLoader(doc))
}

func (s *SchemaSet) validate(name string, loader gojsonschema.JSONLoader) (*ValidationResult, error) {
	schema, ok := s.schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	result, err := schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out, nil
}
