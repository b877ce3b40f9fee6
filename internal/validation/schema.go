package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid        = errors.New("cell schema invalid")
	ErrConfigurationInvalid = errors.New("cell configuration invalid")
)

// Issue is a single configuration failure located by JSON pointer.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// ConfigurationError lists every issue raised while validating a cell
// configuration against its layout schema.
type ConfigurationError struct {
	Issues []Issue
	Cause  error
}

func (e *ConfigurationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrConfigurationInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfigurationInvalid
}

// Issues extracts configuration issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var configErr *ConfigurationError
	if errors.As(err, &configErr) && configErr != nil {
		return configErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return collectIssues(schemaErr)
	}
	return []Issue{{Message: err.Error()}}
}

// ValidateCellSchema ensures a layout's cell schema compiles. An empty
// schema is accepted and disables configuration checks.
func ValidateCellSchema(schema map[string]any) error {
	normalized := NormalizeCellSchema(schema)
	if normalized == nil {
		return nil
	}
	if _, err := compile(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidateConfiguration checks a cell configuration against the layout schema.
func ValidateConfiguration(schema map[string]any, configuration map[string]any) error {
	normalized := NormalizeCellSchema(schema)
	if normalized == nil {
		return nil
	}
	compiled, err := compile(normalized)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if configuration == nil {
		configuration = map[string]any{}
	}
	// jsonschema expects decoded JSON values, so round-trip typed maps.
	payload, err := asJSONValue(configuration)
	if err != nil {
		return &ConfigurationError{Issues: []Issue{{Message: err.Error()}}, Cause: err}
	}
	if err := compiled.Validate(payload); err != nil {
		return &ConfigurationError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// NormalizeCellSchema accepts either a JSON schema or the shorthand
// {"fields": [{"name": "title", "type": "string", "required": true}]}.
func NormalizeCellSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return nil
	}
	if isJSONSchema(schema) {
		return maps.Clone(schema)
	}
	fields, ok := schema["fields"].([]any)
	if !ok {
		return nil
	}
	properties := make(map[string]any, len(fields))
	required := make([]any, 0)
	for _, entry := range fields {
		field, ok := entry.(map[string]any)
		if !ok {
			if name, isName := entry.(string); isName {
				field = map[string]any{"name": name}
			} else {
				continue
			}
		}
		name, _ := field["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		property := map[string]any{}
		if fieldType, ok := field["type"].(string); ok && jsonType(fieldType) != "" {
			property["type"] = jsonType(fieldType)
		}
		properties[name] = property
		if flag, ok := field["required"].(bool); ok && flag {
			required = append(required, name)
		}
	}
	if len(properties) == 0 {
		return nil
	}
	normalized := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		normalized["required"] = required
	}
	return normalized
}

func isJSONSchema(schema map[string]any) bool {
	for _, key := range []string{"$schema", "type", "properties", "oneOf", "anyOf", "allOf"} {
		if _, ok := schema[key]; ok {
			return true
		}
	}
	return false
}

func jsonType(value string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(value)); normalized {
	case "string", "number", "integer", "boolean", "object", "array", "null":
		return normalized
	default:
		return ""
	}
}

func asJSONValue(input map[string]any) (any, error) {
	encoded, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var out any
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func compile(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("cell.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("cell.json")
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
