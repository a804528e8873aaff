package template

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// NormalizeData turns render data into the JSON shape both engines read:
// maps keyed by json tag, []any, string, float64, bool and nil. Top-level
// function values are kept as they are so templates can call them. Blank
// top-level keys are dropped.
func NormalizeData(data any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}

	top, ok := data.(map[string]any)
	if !ok {
		var out map[string]any
		if err := jsonRoundTrip(data, &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = map[string]any{}
		}
		return out, nil
	}

	out := make(map[string]any, len(top))
	for key, value := range top {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if value != nil && reflect.TypeOf(value).Kind() == reflect.Func {
			out[key] = value
			continue
		}
		var plain any
		if err := jsonRoundTrip(value, &plain); err != nil {
			return nil, fmt.Errorf("template data %q: %w", key, err)
		}
		out[key] = plain
	}
	return out, nil
}

func jsonRoundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// TemplateFileName appends ext to name unless it is already present.
func TemplateFileName(name, ext string) string {
	if ext == "" || strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}
