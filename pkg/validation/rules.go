package validation

import (
	"fmt"
	"regexp"
	"sort"
)

// Rules describes the independent constraints attached to one field.
type Rules struct {
	Required   bool     `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength  int      `json:"minLength,omitempty" yaml:"minLength,omitempty" validate:"gte=0"`
	MaxLength  int      `json:"maxLength,omitempty" yaml:"maxLength,omitempty" validate:"gte=0"`
	Pattern    *Pattern `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	IsEmail    bool     `json:"isEmail,omitempty" yaml:"isEmail,omitempty"`
	IsPhone    bool     `json:"isPhone,omitempty" yaml:"isPhone,omitempty"`
	IsBusiness bool     `json:"isBusiness,omitempty" yaml:"isBusiness,omitempty"`
}

// Pattern is a compiled regular expression that decodes from JSON or YAML
// text.
type Pattern struct {
	re *regexp.Regexp
}

// MustPattern compiles expr or panics. Intended for static rule tables.
func MustPattern(expr string) *Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPattern compiles expr.
func NewPattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", expr, err)
	}
	return &Pattern{re: re}, nil
}

// MatchString reports whether s matches the pattern. A nil pattern matches
// everything.
func (p *Pattern) MatchString(s string) bool {
	if p == nil || p.re == nil {
		return true
	}
	return p.re.MatchString(s)
}

// String returns the source expression.
func (p *Pattern) String() string {
	if p == nil || p.re == nil {
		return ""
	}
	return p.re.String()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	compiled, err := NewPattern(string(text))
	if err != nil {
		return err
	}
	*p = *compiled
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	if p.re == nil {
		return nil, nil
	}
	return []byte(p.re.String()), nil
}

// StepRules maps the field keys governed by one step to their rules.
type StepRules map[string]Rules

// Errors maps failing field keys to their message.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Keys returns the failing field keys in sorted order.
func (e Errors) Keys() []string {
	if len(e) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Field returns the message attached to key.
func (e Errors) Field(key string) string {
	return e[key]
}

// Merge returns a copy of e with other applied; later messages win.
func (e Errors) Merge(other Errors) Errors {
	if len(e) == 0 && len(other) == 0 {
		return nil
	}
	out := make(Errors, len(e)+len(other))
	for key, msg := range e {
		out[key] = msg
	}
	for key, msg := range other {
		out[key] = msg
	}
	return out
}
