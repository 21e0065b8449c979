package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RenderJSON serializes a report result with four-space indentation,
// keeping non-ASCII text as-is. Map keys come out sorted, so identical
// inputs always produce byte-identical output.
func RenderJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
