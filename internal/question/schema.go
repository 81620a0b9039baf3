package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// bankSchema describes a question bank document.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"format": map[string]any{
			"type":    "string",
			"pattern": "^v[0-9]+(\\.[0-9]+){0,2}$",
		},
		"title": map[string]any{
			"type": "string",
		},
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchema,
		},
	},
	"required":             []any{"format", "questions"},
	"additionalProperties": false,
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":   map[string]any{"type": "integer"},
		"type": map[string]any{"type": "string", "enum": []any{string(TypeMultipleChoice), string(TypeFillInBlank), string(TypeRearrange)}},
		"questionText": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"correctAnswer": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"explanation": map[string]any{"type": "string"},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
		"rearrangeParts": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"audioUrl": map[string]any{"type": "string"},
		"imageUrl": map[string]any{"type": "string"},
	},
	"required":             []any{"id", "type", "questionText", "correctAnswer"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledBankSchema compiles the bank schema once.
func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(bankSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded bank document against the schema.
func validateDocument(doc any) error {
	schema, err := compiledBankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}
	return nil
}
