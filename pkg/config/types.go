package config

import (
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/validation"
)

const (
	// DefaultSuccessMessage is shown once the record is stored.
	DefaultSuccessMessage = "Your quote request has been successfully submitted!"
	// DefaultFailureMessage is shown for store failures and rejected bots
	// alike.
	DefaultFailureMessage = "There was an error submitting your form. Please try again."
)

// FormConfig is the declarative definition of one wizard.
type FormConfig struct {
	ID                       string           `json:"id" yaml:"id" validate:"required"`
	Title                    string           `json:"title" yaml:"title" validate:"required"`
	Subtitle                 string           `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Steps                    []Step           `json:"steps" yaml:"steps" validate:"required,min=1,dive"`
	Fields                   map[string]Field `json:"fields" yaml:"fields" validate:"required,dive"`
	RequireEmailVerification bool             `json:"requireEmailVerification,omitempty" yaml:"requireEmailVerification,omitempty"`
	PrivacyPolicyURL         string           `json:"privacyPolicyUrl,omitempty" yaml:"privacyPolicyUrl,omitempty" validate:"omitempty,url"`
	FooterText               string           `json:"footerText,omitempty" yaml:"footerText,omitempty"`
	RedirectURL              string           `json:"redirectUrl,omitempty" yaml:"redirectUrl,omitempty" validate:"omitempty,url"`
	Table                    string           `json:"table" yaml:"table" validate:"required"`
	Honeypot                 string           `json:"honeypot,omitempty" yaml:"honeypot,omitempty"`
	Theme                    Theme            `json:"theme" yaml:"theme"`
	Messages                 Messages         `json:"messages" yaml:"messages"`
}

// Step lists the field keys one step governs, in display order.
type Step struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []string `json:"fields" yaml:"fields" validate:"required,min=1,dive,required"`
}

// Field carries presentation metadata and rules for one key.
type Field struct {
	Label       string           `json:"label" yaml:"label" validate:"required"`
	Kind        model.Kind       `json:"kind" yaml:"kind" validate:"required,oneof=text choice choices boolean"`
	Options     []string         `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string           `json:"help,omitempty" yaml:"help,omitempty"`
	Multiline   bool             `json:"multiline,omitempty" yaml:"multiline,omitempty"`
	Rules       validation.Rules `json:"rules" yaml:"rules"`
}

// Theme holds the brand colours and optional named variants.
type Theme struct {
	Name            string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Variant         string                  `json:"variant,omitempty" yaml:"variant,omitempty"`
	PrimaryColor    string                  `json:"primaryColor,omitempty" yaml:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor  string                  `json:"secondaryColor,omitempty" yaml:"secondaryColor,omitempty" validate:"omitempty,hexcolor"`
	TextColor       string                  `json:"textColor,omitempty" yaml:"textColor,omitempty" validate:"omitempty,hexcolor"`
	BackgroundColor string                  `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty" validate:"omitempty,hexcolor"`
	Variants        map[string]ThemeVariant `json:"variants,omitempty" yaml:"variants,omitempty" validate:"dive"`
}

// ThemeVariant overrides a subset of the base colours.
type ThemeVariant struct {
	PrimaryColor    string `json:"primaryColor,omitempty" yaml:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor  string `json:"secondaryColor,omitempty" yaml:"secondaryColor,omitempty" validate:"omitempty,hexcolor"`
	TextColor       string `json:"textColor,omitempty" yaml:"textColor,omitempty" validate:"omitempty,hexcolor"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty" validate:"omitempty,hexcolor"`
}

// Messages are the user facing submission outcomes.
type Messages struct {
	Success string `json:"success,omitempty" yaml:"success,omitempty"`
	Failure string `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// StepCount returns the number of steps.
func (c *FormConfig) StepCount() int {
	if c == nil {
		return 0
	}
	return len(c.Steps)
}

// Step returns the 1-based step n.
func (c *FormConfig) Step(n int) (Step, bool) {
	if c == nil || n < 1 || n > len(c.Steps) {
		return Step{}, false
	}
	return c.Steps[n-1], true
}

// Label returns the display label for key, falling back to the key.
func (c *FormConfig) Label(key string) string {
	if c != nil {
		if field, ok := c.Fields[key]; ok && field.Label != "" {
			return field.Label
		}
	}
	return key
}

// StepRules returns the rules of the fields step n governs. Unknown steps
// return nil.
func (c *FormConfig) StepRules(n int) validation.StepRules {
	step, ok := c.Step(n)
	if !ok {
		return nil
	}
	rules := make(validation.StepRules, len(step.Fields))
	for _, key := range step.Fields {
		rules[key] = c.Fields[key].Rules
	}
	return rules
}

// Validator binds every step's rules and labels into a step validator.
func (c *FormConfig) Validator() validation.StepValidator {
	byStep := make(map[int]validation.StepRules, c.StepCount())
	for n := 1; n <= c.StepCount(); n++ {
		byStep[n] = c.StepRules(n)
	}
	return validation.NewStepValidator(byStep, c.Label)
}

// GovernedKeys returns every key governed by a step, in step order.
func (c *FormConfig) GovernedKeys() []string {
	if c == nil {
		return nil
	}
	var keys []string
	for _, step := range c.Steps {
		keys = append(keys, step.Fields...)
	}
	return keys
}

// StepOf returns the step number that governs key, or 0.
func (c *FormConfig) StepOf(key string) int {
	if c == nil {
		return 0
	}
	for idx, step := range c.Steps {
		for _, field := range step.Fields {
			if field == key {
				return idx + 1
			}
		}
	}
	return 0
}

// SuccessMessage returns the configured success text or its default.
func (c *FormConfig) SuccessMessage() string {
	if c != nil && c.Messages.Success != "" {
		return c.Messages.Success
	}
	return DefaultSuccessMessage
}

// FailureMessage returns the configured failure text or its default.
func (c *FormConfig) FailureMessage() string {
	if c != nil && c.Messages.Failure != "" {
		return c.Messages.Failure
	}
	return DefaultFailureMessage
}
