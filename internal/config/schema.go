package config

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/ziglint/ziglint/internal/rule"
)

// Schema builds the JSON Schema describing every registered rule's
// accepted severity and default (spec.md §6 "A JSON schema is emittable
// describing every registered rule's options and default severity").
func Schema(registry []rule.Rule) *jsonschema.Schema {
	rulesProps := make(map[string]*jsonschema.Schema, len(registry))
	for _, r := range registry {
		rulesProps[r.Meta.Name] = ruleSchema(r)
	}

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"rules": {
				Type:       "object",
				Properties: rulesProps,
			},
			"include": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
			"exclude": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
			"threads": {
				Type:        "integer",
				Description: "worker count; 0 means hardware-thread-count",
			},
			"fix": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"kind":      {Type: "string", Enum: []any{"none", "fix", "suggestion"}},
					"dangerous": {Type: "boolean"},
				},
			},
		},
	}
}

func ruleSchema(r rule.Rule) *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: string(r.Meta.Category) + " rule, default severity " + r.Meta.DefaultSeverity.String(),
		AnyOf: []*jsonschema.Schema{
			{Type: "string", Enum: []any{"off", "warning", "error"}},
			{
				Type: "array",
				PrefixItems: []*jsonschema.Schema{
					{Type: "string", Enum: []any{"off", "warning", "error"}},
					{Type: "object"},
				},
			},
		},
	}
}
