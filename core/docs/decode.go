package docs

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Decode converts a parsed docs.json value into modules. It accepts either a
// top-level array of modules or an object holding them under "modules".
// Module names must be present and unique.
func Decode(input any) ([]Module, error) {
	raw := input
	if obj, ok := input.(map[string]any); ok {
		m, ok := obj["modules"]
		if !ok {
			return nil, errors.New(`docs: object has no "modules" field`)
		}
		raw = m
	}
	if _, ok := raw.([]any); !ok {
		return nil, fmt.Errorf("docs: want an array of modules, got %s", kindOf(raw))
	}

	// Round-trip through encoding/json so the typed decoders do the work.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("docs: re-encoding input: %w", err)
	}
	var modules []Module
	if err := json.Unmarshal(data, &modules); err != nil {
		return nil, fmt.Errorf("docs: decoding modules: %w", err)
	}

	seen := make(map[string]bool, len(modules))
	for i, m := range modules {
		if m.Name == "" {
			return nil, fmt.Errorf("docs: module %d has no name", i)
		}
		if seen[m.PageName()] {
			return nil, fmt.Errorf("docs: duplicate module %q", m.Name)
		}
		seen[m.PageName()] = true
	}
	return modules, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
