package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingID is returned for a task without an identifier.
var ErrMissingID = errors.New("task id required")

// ID is an opaque, server-assigned task identifier.
// It remembers whether the server sent it as a JSON number or string
// so it can be echoed back in the same form.
type ID struct {
	value  string
	number bool
}

// StringID returns an ID that encodes as a JSON string.
func StringID(s string) ID { return ID{value: s} }

// NumberID returns an ID that encodes as a JSON number.
func NumberID(n int64) ID { return ID{value: strconv.FormatInt(n, 10), number: true} }

// String returns the identifier as it appears in URL paths.
func (id ID) String() string { return id.value }

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool { return id.value == "" }

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.number {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler.
// Accepts a non-empty JSON string or a number; null and anything else is an error.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrMissingID
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}
		if s == "" {
			return ErrMissingID
		}
		*id = ID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil || n == "" {
		return fmt.Errorf("invalid task id: %s", data)
	}
	*id = ID{value: n.String(), number: true}
	return nil
}
