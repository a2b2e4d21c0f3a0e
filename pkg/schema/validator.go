package schema

import (
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

// Validator checks raw JSON documents against one compiled schema.
type Validator struct {
	name   string
	schema *jsonschema.Schema
}

func NewValidator(name string, rawSchema []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	s, err := compiler.Compile(rawSchema)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Validator{name: name, schema: s}, nil
}

// MustValidator panics on a bad schema. Only for package-level schemas.
func MustValidator(name string, rawSchema []byte) *Validator {
	v, err := NewValidator(name, rawSchema)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) Validate(data []byte) error {
	result := v.schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("%s schema validation failed: %v", v.name, result.Errors)
}
