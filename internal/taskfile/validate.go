package taskfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "taskfile.schema.json"

// ValidationError represents a schema violation at a location in the task file.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult holds the outcome of validating a task file.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Schema returns the JSON Schema task files are checked against for tag.
// A task that has the tag field must tag itself with a string or a list of
// strings; on any other task, each object-valued entry is a target with the
// same constraint.
func Schema(tag string) ([]byte, error) {
	groups := map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}
	tagged := map[string]any{
		"properties": map[string]any{tag: map[string]any{"$ref": "#/definitions/groups"}},
	}
	schema := map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"definitions": map[string]any{
			"groups": groups,
			"target": map[string]any{
				"if":   map[string]any{"type": "object"},
				"then": tagged,
			},
		},
		"additionalProperties": map[string]any{
			"if":   map[string]any{"type": "object", "required": []any{tag}},
			"then": tagged,
			"else": map[string]any{
				"additionalProperties": map[string]any{"$ref": "#/definitions/target"},
			},
		},
	}
	return json.Marshal(schema)
}

// Validate checks m against the task file schema for tag.
func Validate(m *Map, tag string) (*ValidationResult, error) {
	data, err := Schema(tag)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	// Round-trip through JSON so TOML integers and datetimes validate as
	// their JSON counterparts.
	fileData, err := json.Marshal(m.Plain())
	if err != nil {
		return nil, fmt.Errorf("marshal task file for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(fileData, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal task file for validation: %w", err)
	}

	result := &ValidationResult{Valid: true}
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
