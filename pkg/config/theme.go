package config

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeVersion is stamped on manifests derived from a form config.
const DefaultThemeVersion = "1.0.0"

// ThemeRegistrar is satisfied by the go-theme registry.
type ThemeRegistrar interface {
	Register(manifest *theme.Manifest) error
}

// Tokens returns the base colour tokens keyed by token name.
func (t Theme) Tokens() map[string]string {
	return colourTokens(t.PrimaryColor, t.SecondaryColor, t.TextColor, t.BackgroundColor)
}

func (v ThemeVariant) tokens() map[string]string {
	return colourTokens(v.PrimaryColor, v.SecondaryColor, v.TextColor, v.BackgroundColor)
}

func colourTokens(primary, secondary, text, background string) map[string]string {
	out := make(map[string]string, 4)
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			out[key] = value
		}
	}
	set("primary-color", primary)
	set("secondary-color", secondary)
	set("text-color", text)
	set("background-color", background)
	return out
}

// ThemeName returns the theme name, defaulting to the form id.
func (c *FormConfig) ThemeName() string {
	if c.Theme.Name != "" {
		return c.Theme.Name
	}
	return c.ID
}

// Manifest describes the form theme as a go-theme manifest.
func (c *FormConfig) Manifest() *theme.Manifest {
	manifest := &theme.Manifest{
		Name:    c.ThemeName(),
		Version: DefaultThemeVersion,
		Tokens:  c.Theme.Tokens(),
	}
	if len(c.Theme.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(c.Theme.Variants))
		for name, variant := range c.Theme.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: variant.tokens()}
		}
	}
	return manifest
}

// RegisterTheme adds the form theme to registry.
func (c *FormConfig) RegisterTheme(registry ThemeRegistrar) error {
	if err := registry.Register(c.Manifest()); err != nil {
		return fmt.Errorf("config: register theme %q: %w", c.ThemeName(), err)
	}
	return nil
}

// RendererConfig resolves variant tokens over the base tokens and derives
// the CSS variables. An empty variant selects the configured default.
func (c *FormConfig) RendererConfig(variant string) (*theme.RendererConfig, error) {
	if variant == "" {
		variant = c.Theme.Variant
	}

	tokens := c.Theme.Tokens()
	if variant != "" {
		override, ok := c.Theme.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
		}
		for key, value := range override.tokens() {
			tokens[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:   c.ThemeName(),
		Variant: variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}, nil
}

// CSSVarsStyle flattens CSS variables into an inline style declaration with
// stable ordering.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
