package parser

import (
	"bytes"
	"encoding/json"
	"errors"
)

// scalarText accepts null, a string, a number or a boolean and keeps the
// textual form. Numbers and booleans keep their JSON spelling (8080, true).
type scalarText struct {
	value string
}

func (s *scalarText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		s.value = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		s.value = v
	case '{':
		return errors.New("defaultValue: expected a scalar value, got an object")
	case '[':
		return errors.New("defaultValue: expected a scalar value, got an array")
	default:
		s.value = string(trimmed)
	}
	return nil
}
