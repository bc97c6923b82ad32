package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
)

// Extension keys attached to the generated schema.
const (
	ExtensionStep     = "x-step"
	ExtensionTable    = "x-table"
	ExtensionForm     = "x-form"
	ExtensionHoneypot = "x-honeypot"
)

// Issue is one schema violation.
type Issue struct {
	Field   string
	Message string
}

// Record builds the object schema of the records cfg produces. Optional
// text keeps only its length ceiling so blank values stay valid; optional
// choices accept the empty string.
func Record(cfg *config.FormConfig) *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	root.Title = cfg.Title
	root.Description = cfg.Subtitle
	root.Properties = make(openapi3.Schemas, len(cfg.Fields)+1)
	root.Extensions = map[string]any{
		ExtensionForm:  cfg.ID,
		ExtensionTable: cfg.Table,
	}

	var required []string
	for _, key := range cfg.GovernedKeys() {
		field := cfg.Fields[key]
		prop := fieldSchema(field)
		prop.Title = field.Label
		prop.Description = field.Help
		prop.Extensions = map[string]any{ExtensionStep: cfg.StepOf(key)}
		root.Properties[key] = openapi3.NewSchemaRef("", prop)
		if field.Rules.Required {
			required = append(required, key)
		}
	}
	if cfg.Honeypot != "" {
		hp := openapi3.NewStringSchema()
		hp.Extensions = map[string]any{ExtensionHoneypot: true}
		root.Properties[cfg.Honeypot] = openapi3.NewSchemaRef("", hp)
	}
	sort.Strings(required)
	root.Required = required
	return root
}

func fieldSchema(field config.Field) *openapi3.Schema {
	rules := field.Rules
	switch field.Kind {
	case model.KindBoolean:
		s := openapi3.NewBoolSchema()
		if rules.Required {
			s.Enum = []any{true}
		}
		return s
	case model.KindChoice:
		s := openapi3.NewStringSchema()
		for _, opt := range field.Options {
			s.Enum = append(s.Enum, opt)
		}
		if !rules.Required {
			s.Enum = append(s.Enum, "")
		}
		return s
	case model.KindChoices:
		items := openapi3.NewStringSchema()
		for _, opt := range field.Options {
			items.Enum = append(items.Enum, opt)
		}
		s := openapi3.NewArraySchema()
		s.Items = openapi3.NewSchemaRef("", items)
		if rules.Required {
			s.MinItems = 1
		}
		return s
	default:
		s := openapi3.NewStringSchema()
		if rules.MaxLength > 0 {
			max := uint64(rules.MaxLength)
			s.MaxLength = &max
		}
		if rules.IsEmail {
			s.Format = "email"
		}
		if rules.Required {
			min := rules.MinLength
			if min < 1 {
				min = 1
			}
			s.MinLength = uint64(min)
			if rules.Pattern != nil {
				s.Pattern = rules.Pattern.String()
			}
		}
		return s
	}
}

// JSON renders the record schema with sorted keys.
func JSON(cfg *config.FormConfig) ([]byte, error) {
	raw, err := sonic.ConfigStd.MarshalIndent(Record(cfg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode record schema: %w", err)
	}
	return raw, nil
}

// Check validates values against the record schema and returns every
// violation sorted by field.
func Check(cfg *config.FormConfig, values model.Values) []Issue {
	err := Record(cfg).VisitJSON(map[string]any(values), openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var issues []Issue
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			issues = append(issues, issueOf(item))
		}
	} else {
		issues = append(issues, issueOf(err))
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return issues
}

func issueOf(err error) Issue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		field := strings.Join(schemaErr.JSONPointer(), ".")
		return Issue{Field: field, Message: schemaErr.Reason}
	}
	return Issue{Message: err.Error()}
}
