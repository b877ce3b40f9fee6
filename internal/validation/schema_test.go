package validation

import (
	"errors"
	"testing"
)

func TestValidateConfigurationAcceptsMatchingPayload(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"limit": map[string]any{"type": "integer"},
		},
		"required": []any{"title"},
	}
	if err := ValidateConfiguration(schema, map[string]any{"title": "News", "limit": 5}); err != nil {
		t.Fatalf("expected configuration to validate, got %v", err)
	}
}

func TestValidateConfigurationReportsIssues(t *testing.T) {
	schema := map[string]any{
		"fields": []any{
			map[string]any{"name": "title", "type": "string", "required": true},
		},
	}
	err := ValidateConfiguration(schema, map[string]any{"unknown": true})
	if !errors.Is(err, ErrConfigurationInvalid) {
		t.Fatalf("expected ErrConfigurationInvalid, got %v", err)
	}
	if len(Issues(err)) == 0 {
		t.Fatalf("expected issues to be reported")
	}
}

func TestValidateConfigurationWithoutSchema(t *testing.T) {
	if err := ValidateConfiguration(nil, map[string]any{"anything": 1}); err != nil {
		t.Fatalf("expected nil schema to accept any configuration, got %v", err)
	}
}

func TestValidateCellSchemaRejectsBrokenSchema(t *testing.T) {
	err := ValidateCellSchema(map[string]any{"type": 12})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestNormalizeCellSchemaShorthand(t *testing.T) {
	normalized := NormalizeCellSchema(map[string]any{"fields": []any{"title"}})
	if normalized == nil {
		t.Fatalf("expected shorthand to normalize")
	}
	properties, ok := normalized["properties"].(map[string]any)
	if !ok || properties["title"] == nil {
		t.Fatalf("expected title property, got %#v", normalized)
	}
}
