package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/state"
)

// NotProvided is shown for optional fields left blank.
const NotProvided = "Not provided"

// View is the template data for one form state.
type View struct {
	FormID                   string      `json:"formId"`
	Title                    string      `json:"title"`
	Subtitle                 string      `json:"subtitle,omitempty"`
	FooterText               string      `json:"footerText,omitempty"`
	PrivacyPolicyURL         string      `json:"privacyPolicyUrl,omitempty"`
	RequireEmailVerification bool        `json:"requireEmailVerification"`
	Step                     int         `json:"step"`
	StepCount                int         `json:"stepCount"`
	Steps                    []StepView  `json:"steps"`
	FormErrors               []string    `json:"formErrors,omitempty"`
	Outcome                  *Outcome    `json:"outcome,omitempty"`
	Theme                    ThemeView   `json:"theme"`
	Status                   state.Phase `json:"status"`
}

// StepView is one step of the summary.
type StepView struct {
	Number      int         `json:"number"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Current     bool        `json:"current"`
	Fields      []FieldView `json:"fields"`
}

// FieldView is one field with its display value and errors.
type FieldView struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Kind     model.Kind `json:"kind"`
	Help     string     `json:"help,omitempty"`
	Display  string     `json:"display"`
	Values   []string   `json:"values,omitempty"`
	Empty    bool       `json:"empty"`
	Required bool       `json:"required"`
	Errors   []string   `json:"errors,omitempty"`
}

// ThemeView carries the resolved theme tokens for templates.
type ThemeView struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	Style   string            `json:"style,omitempty"`
}

// Invalid reports whether any field or form error is present.
func (v View) Invalid() bool {
	if len(v.FormErrors) > 0 {
		return true
	}
	for _, step := range v.Steps {
		for _, field := range step.Fields {
			if len(field.Errors) > 0 {
				return true
			}
		}
	}
	return false
}

// BuildView assembles the template data for values under cfg.
func BuildView(cfg *config.FormConfig, values model.Values, opts RenderOptions) (View, error) {
	if cfg == nil {
		return View{}, ErrNilConfig
	}

	themeConfig, err := cfg.RendererConfig(opts.Variant)
	if err != nil {
		return View{}, fmt.Errorf("render: %w", err)
	}

	mapping := MapErrors(cfg, opts.Errors)
	view := View{
		FormID:                   cfg.ID,
		Title:                    cfg.Title,
		Subtitle:                 cfg.Subtitle,
		FooterText:               cfg.FooterText,
		PrivacyPolicyURL:         cfg.PrivacyPolicyURL,
		RequireEmailVerification: cfg.RequireEmailVerification,
		Step:                     opts.Step,
		StepCount:                cfg.StepCount(),
		FormErrors:               MergeFormErrors(mapping.Form, opts.FormErrors...),
		Outcome:                  NewOutcome(cfg, opts.Status, opts.Receipt),
		Status:                   opts.Status.Phase,
		Theme: ThemeView{
			Name:    themeConfig.Theme,
			Variant: themeConfig.Variant,
			Tokens:  themeConfig.Tokens,
			Style:   config.CSSVarsStyle(themeConfig.CSSVars),
		},
	}
	if view.Status == "" {
		view.Status = state.PhaseIdle
	}

	for i, step := range cfg.Steps {
		number := i + 1
		sv := StepView{
			Number:      number,
			Title:       step.Title,
			Description: step.Description,
			Current:     number == opts.Step,
			Fields:      make([]FieldView, 0, len(step.Fields)),
		}
		for _, key := range step.Fields {
			field := cfg.Fields[key]
			fv := displayField(key, field, values)
			fv.Errors = mapping.Fields[key]
			sv.Fields = append(sv.Fields, fv)
		}
		view.Steps = append(view.Steps, sv)
	}

	SelectSteps(&view, opts.Steps...)
	if opts.Translator != nil {
		Localize(&view, opts.Locale, opts.Translator, opts.OnMissing)
	}
	return view, nil
}

func displayField(key string, field config.Field, values model.Values) FieldView {
	fv := FieldView{
		Key:      key,
		Label:    field.Label,
		Kind:     field.Kind,
		Help:     field.Help,
		Required: field.Rules.Required,
	}
	if fv.Label == "" {
		fv.Label = key
	}

	switch field.Kind {
	case model.KindBoolean:
		if values.Bool(key) {
			fv.Display = "Yes"
		} else {
			fv.Display = "No"
		}
	case model.KindChoices:
		fv.Values = values.Strings(key)
		fv.Display = strings.Join(fv.Values, ", ")
	default:
		fv.Display = strings.TrimSpace(values.String(key))
	}

	if fv.Display == "" {
		fv.Empty = true
		fv.Display = NotProvided
	}
	return fv
}
