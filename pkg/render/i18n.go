package render

import (
	"strconv"
	"strings"
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler picks the text used when a key has no
// translation. fallback is the untranslated text.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Catalog is an in-memory Translator keyed by locale then message key.
type Catalog map[string]map[string]string

// Translate implements Translator.
func (c Catalog) Translate(locale, key string, _ ...any) (string, error) {
	if msg, ok := c[locale][key]; ok {
		return msg, nil
	}
	return "", errMissing{locale: locale, key: key}
}

type errMissing struct {
	locale string
	key    string
}

func (e errMissing) Error() string {
	return "render: no translation for " + strconv.Quote(e.key) + " in locale " + strconv.Quote(e.locale)
}

// Message keys looked up by Localize.
const (
	KeyFormTitle    = "form.title"
	KeyFormSubtitle = "form.subtitle"
	KeyFormFooter   = "form.footer"
)

// StepTitleKey is the message key of step n's title.
func StepTitleKey(n int) string { return "steps." + strconv.Itoa(n) + ".title" }

// StepDescriptionKey is the message key of step n's description.
func StepDescriptionKey(n int) string { return "steps." + strconv.Itoa(n) + ".description" }

// FieldLabelKey is the message key of a field label.
func FieldLabelKey(key string) string { return "fields." + key + ".label" }

// FieldHelpKey is the message key of a field's help text.
func FieldHelpKey(key string) string { return "fields." + key + ".help" }

// Localize translates the titles, labels and help text of view in place.
// Missing keys keep the configured text unless onMissing says otherwise.
func Localize(view *View, locale string, t Translator, onMissing MissingTranslationHandler) {
	if view == nil {
		return
	}
	if onMissing == nil {
		onMissing = keepFallback
	}
	tr := func(key, fallback string) string {
		return translate(locale, key, fallback, t, onMissing)
	}

	view.Title = tr(KeyFormTitle, view.Title)
	view.Subtitle = tr(KeyFormSubtitle, view.Subtitle)
	view.FooterText = tr(KeyFormFooter, view.FooterText)
	for i := range view.Steps {
		step := &view.Steps[i]
		step.Title = tr(StepTitleKey(step.Number), step.Title)
		step.Description = tr(StepDescriptionKey(step.Number), step.Description)
		for j := range step.Fields {
			field := &step.Fields[j]
			field.Label = tr(FieldLabelKey(field.Key), field.Label)
			field.Help = tr(FieldHelpKey(field.Key), field.Help)
		}
	}
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

func keepFallback(_, _, fallback string, _ error) string {
	return fallback
}
