package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSchema = `{
  "type": "object",
  "required": ["x", "y"],
  "properties": {
    "x": {"type": "integer"},
    "y": {"type": "integer"}
  }
}`

func TestValidate(t *testing.T) {
	v, err := NewValidator("point", []byte(pointSchema))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"x":1,"y":2}`, false},
		{"missing field", `{"x":1}`, true},
		{"wrong type", `{"x":"1","y":2}`, true},
		{"not json", `{"x":`, true},
		{"array", `[1,2]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewValidatorRejectsBadSchema(t *testing.T) {
	_, err := NewValidator("broken", []byte(`{"type":`))
	assert.Error(t, err)
}
