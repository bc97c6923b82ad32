package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-quoteform/pkg/model"
)

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		structValidator = validator.New()
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return structValidator
}

// Parse decodes a JSON or YAML form document and validates it. source names
// the document in error messages.
func Parse(data []byte, source string) (*FormConfig, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config: file %s is empty", source)
	}

	var cfg FormConfig
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		cfg = FormConfig{}
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return nil, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &cfg, nil
}

// Load reads and parses the form document at path.
func Load(path string) (*FormConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses name from fsys.
func LoadFS(fsys fs.FS, name string) (*FormConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Validate runs the struct tag checks followed by the structural checks.
func (c *FormConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			issues := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				issues = append(issues, fmt.Sprintf("%s failed %q", trimNamespace(fe.Namespace()), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(issues, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var issues []string
	seen := make(map[string]int)
	for idx, step := range c.Steps {
		n := idx + 1
		for _, key := range step.Fields {
			if prev, dup := seen[key]; dup {
				issues = append(issues, fmt.Sprintf("field %q governed by steps %d and %d", key, prev, n))
				continue
			}
			seen[key] = n

			field, ok := c.Fields[key]
			if !ok {
				issues = append(issues, fmt.Sprintf("step %d field %q has no definition", n, key))
				continue
			}
			if (field.Kind == model.KindChoice || field.Kind == model.KindChoices) && len(field.Options) == 0 {
				issues = append(issues, fmt.Sprintf("choice field %q lists no options", key))
			}
		}
	}
	if c.Honeypot != "" {
		if n, governed := seen[c.Honeypot]; governed {
			issues = append(issues, fmt.Sprintf("honeypot %q is governed by step %d", c.Honeypot, n))
		}
	}
	if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			issues = append(issues, fmt.Sprintf("theme variant %q is not declared", c.Theme.Variant))
		}
	}

	if len(issues) > 0 {
		sort.Strings(issues)
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(issues, "; "))
	}
	return nil
}

// CheckDefaults verifies that values, the view of an initial record, holds a
// default for every governed key.
func (c *FormConfig) CheckDefaults(values model.Values) error {
	var missing []string
	for _, key := range c.GovernedKeys() {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingDefault, strings.Join(missing, ", "))
	}
	return nil
}

func trimNamespace(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
