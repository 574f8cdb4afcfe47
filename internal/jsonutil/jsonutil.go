// Package jsonutil provides shared helpers for handling opaque JSON payloads:
// validation with context and indentation for display.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IndentPrefix and IndentUnit match the two-space layout of JSON.stringify(v, null, 2).
const (
	IndentPrefix = ""
	IndentUnit   = "  "
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// Raw validates data as a single JSON value and returns it as a RawMessage.
// Leading and trailing whitespace is trimmed; key order is preserved.
func Raw(data []byte, context string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := UnmarshalWithContext(data, &raw, context); err != nil {
		return nil, err
	}
	return raw, nil
}

// Indent returns data re-indented with two spaces per level.
// Empty input yields an empty string.
func Indent(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, IndentPrefix, IndentUnit); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustIndent is Indent for data already known to be valid JSON. On error it
// falls back to the raw text.
func MustIndent(data []byte) string {
	s, err := Indent(data)
	if err != nil {
		return string(data)
	}
	return s
}
