package generation

import (
	"github.com/dhanushgc/HireMind/pkg/schema"
)

var questionSetSchema = schema.MustValidator("question_set", []byte(`{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 4,
      "maxItems": 4,
      "items": {
        "type": "object",
        "required": ["type", "question"],
        "properties": {
          "type": {"type": "string", "enum": ["technical", "leadership"]},
          "question": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`))
