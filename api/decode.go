package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// The wire format is documented as snake_case but some responses arrive
// camelCase. Every field is looked up under both spellings, snake_case
// first; neither convention is assumed canonical.

// envelope is the {data: ...} wrapper around query API responses.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (e envelope) object() (map[string]any, error) {
	if isNull(e.Data) {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(e.Data, &m); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return m, nil
}

func (e envelope) list() ([]map[string]any, error) {
	if isNull(e.Data) {
		return nil, nil
	}
	var l []map[string]any
	if err := json.Unmarshal(e.Data, &l); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return l, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func pickAny(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func pickString(m map[string]any, keys ...string) string {
	if s, ok := pickAny(m, keys...).(string); ok {
		return s
	}
	return ""
}

func pickInt(m map[string]any, keys ...string) int {
	switch v := pickAny(m, keys...).(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func pickObject(m map[string]any, keys ...string) map[string]any {
	if o, ok := pickAny(m, keys...).(map[string]any); ok {
		return o
	}
	return nil
}

// pickTime returns an RFC 3339 timestamp. String values pass through as-is;
// numeric values are treated as unix milliseconds.
func pickTime(m map[string]any, keys ...string) string {
	switch v := pickAny(m, keys...).(type) {
	case string:
		return v
	case float64:
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339)
	}
	return ""
}
