package awssecrets

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Decoder turns a secret payload into v.
type Decoder interface {
	Decode(payload string, v any) error
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(payload string, v any) error

func (f DecoderFunc) Decode(payload string, v any) error {
	return f(payload, v)
}

// JSONDecoder decodes payloads with encoding/json. It is the default.
var JSONDecoder Decoder = DecoderFunc(func(payload string, v any) error {
	return json.Unmarshal([]byte(payload), v)
})

// SchemaViolationError lists the JSON Schema violations found in a payload.
// Field paths are reported, never values.
type SchemaViolationError struct {
	Violations []string
}

func (e *SchemaViolationError) Error() string {
	return "payload does not match schema: " + strings.Join(e.Violations, "; ")
}

type schemaDecoder struct {
	schema *gojsonschema.Schema
	next   Decoder
}

// NewSchemaDecoder returns a Decoder that validates the payload against the
// given JSON Schema document before decoding it as JSON.
func NewSchemaDecoder(schema string) (Decoder, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON schema: %w", err)
	}
	return &schemaDecoder{schema: s, next: JSONDecoder}, nil
}

func (d *schemaDecoder) Decode(payload string, v any) error {
	result, err := d.schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return err
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			violations = append(violations, fmt.Sprintf("%s: %s", re.Field(), re.Type()))
		}
		return &SchemaViolationError{Violations: violations}
	}
	return d.next.Decode(payload, v)
}
