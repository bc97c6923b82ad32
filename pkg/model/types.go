package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Kind enumerates the value kinds a form field can hold.
type Kind string

const (
	// KindText is free text.
	KindText Kind = "text"
	// KindChoice is a single enumerated choice stored as a string.
	KindChoice Kind = "choice"
	// KindChoices is a set of enumerated choices stored as a string slice.
	KindChoices Kind = "choices"
	// KindBoolean is a checkbox style flag.
	KindBoolean Kind = "boolean"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindChoice, KindChoices, KindBoolean:
		return true
	default:
		return false
	}
}

// Values is the flat field key -> value view of a record.
type Values map[string]any

// Partial carries a shallow update keyed by field key.
type Partial map[string]any

// Honeypotter is implemented by records that carry a hidden anti-bot field.
type Honeypotter interface {
	Honeypot() string
}

// ErrNotObject is returned when a record does not serialise to a JSON object.
var ErrNotObject = errors.New("model: record is not a JSON object")

// ValuesOf converts any JSON-serialisable record into its Values view.
func ValuesOf(record any) (Values, error) {
	raw, err := sonic.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("model: marshal record: %w", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, ErrNotObject
	}
	var out Values
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("model: decode record: %w", err)
	}
	if out == nil {
		out = Values{}
	}
	return out, nil
}

// Merge applies partial onto current and returns the updated record. The
// merge is shallow: each key in partial replaces the whole value in current
// (slices included) and a nil value resets the key to its zero value. Keys
// unknown to T are dropped when decoding back into T.
func Merge[T any](current T, partial Partial) (T, error) {
	if len(partial) == 0 {
		return current, nil
	}

	var zero T
	doc, err := sonic.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("model: marshal record: %w", err)
	}
	patch, err := sonic.Marshal(map[string]any(partial))
	if err != nil {
		return zero, fmt.Errorf("model: marshal partial: %w", err)
	}

	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return zero, fmt.Errorf("model: merge partial: %w", err)
	}

	var out T
	if err := sonic.Unmarshal(merged, &out); err != nil {
		return zero, fmt.Errorf("model: partial does not fit record: %w", err)
	}
	return out, nil
}

// Without returns a copy of values with the provided keys removed.
func (v Values) Without(keys ...string) Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

// String returns the text stored under key, or "" when absent or not text.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Strings returns the choices stored under key.
func (v Values) Strings(key string) []string {
	switch typed := v[key].(type) {
	case []string:
		return append([]string(nil), typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Bool returns the flag stored under key.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}
