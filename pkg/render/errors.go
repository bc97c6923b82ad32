package render

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/validation"
)

var (
	// ErrNilConfig is returned when a view is requested without a form.
	ErrNilConfig = errors.New("render: form config is required")
	// ErrMissingTranslator is passed to MissingTranslationHandler when no
	// translator is configured.
	ErrMissingTranslator = errors.New("render: translator is not configured")
)

// ErrorMapping splits an error payload into field messages keyed by field
// key and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// ValidationPayload converts step validation errors into a payload.
func ValidationPayload(errs validation.Errors) map[string][]string {
	if errs.Valid() {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for key, msg := range errs {
		out[key] = []string{msg}
	}
	return out
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors resolves payload paths (plain keys, dotted paths or JSON
// pointers, optionally wrapped in body/data segments) to the field keys of
// cfg. Paths that match no field become form-level errors.
func MapErrors(cfg *config.FormConfig, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 || cfg == nil {
		return mapping
	}

	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		key, ok := resolveField(rawPath, cfg.Fields)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[key] = normalizeMessages(append(mapping.Fields[key], messages...))
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolveField(raw string, fields map[string]config.Field) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	for _, segment := range dropWrapperSegments(pathSegments(trimmed)) {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if _, ok := fields[segment]; ok {
			return segment, true
		}
		return "", false
	}
	return "", false
}

func pathSegments(path string) []string {
	clean := strings.TrimLeft(path, "#$./")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"fields":     {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
