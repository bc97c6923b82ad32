package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinPhoneDigits is the number of digits a phone value must contain once
// every non-digit character is stripped.
const MinPhoneDigits = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// freeEmailDomains lists consumer webmail providers rejected by IsBusiness.
// Matching is exact on the lowercased domain; subdomains are not denied.
var freeEmailDomains = map[string]struct{}{
	"gmail.com":      {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"aol.com":        {},
	"icloud.com":     {},
	"me.com":         {},
	"mail.com":       {},
	"protonmail.com": {},
	"zoho.com":       {},
}

// FreeEmailDomain reports whether domain is on the free provider deny-list.
func FreeEmailDomain(domain string) bool {
	_, ok := freeEmailDomains[strings.ToLower(domain)]
	return ok
}

// ValidateField checks value against rules and returns the first failing
// message, or "" when the value passes. fieldName is the label used in
// messages.
func ValidateField(value any, fieldName string, rules Rules) string {
	if isEmpty(value) {
		if rules.Required {
			return requiredMessage(fieldName)
		}
		return ""
	}

	switch typed := value.(type) {
	case string:
		return validateText(typed, fieldName, rules)
	case bool:
		if rules.Required && !typed {
			return requiredMessage(fieldName)
		}
	}
	return ""
}

func validateText(value, fieldName string, rules Rules) string {
	length := utf8.RuneCountInString(value)
	if rules.MinLength > 0 && length < rules.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", fieldName, rules.MinLength)
	}
	if rules.MaxLength > 0 && length > rules.MaxLength {
		return fmt.Sprintf("%s cannot exceed %d characters", fieldName, rules.MaxLength)
	}
	if rules.Pattern != nil && !rules.Pattern.MatchString(value) {
		return fmt.Sprintf("%s format is invalid", fieldName)
	}

	if rules.IsEmail {
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
		if rules.IsBusiness {
			if _, domain, ok := strings.Cut(value, "@"); ok && FreeEmailDomain(domain) {
				return "Please enter a business email address"
			}
		}
	}

	if rules.IsPhone && countDigits(value) < MinPhoneDigits {
		return "Please enter a valid phone number"
	}
	return ""
}

// ValidateStep runs ValidateField for every key in rules and returns only the
// failing ones. Labels default to the field key; use ValidateStepLabeled to
// supply display names.
func ValidateStep(rules StepRules, values map[string]any) Errors {
	return ValidateStepLabeled(rules, values, nil)
}

// ValidateStepLabeled is ValidateStep with a label lookup used in messages.
func ValidateStepLabeled(rules StepRules, values map[string]any, label func(key string) string) Errors {
	var errs Errors
	for key, fieldRules := range rules {
		name := key
		if label != nil {
			if l := label(key); l != "" {
				name = l
			}
		}
		msg := ValidateField(values[key], name, fieldRules)
		if msg == "" {
			continue
		}
		if errs == nil {
			errs = make(Errors)
		}
		errs[key] = msg
	}
	return errs
}

// StepValidator validates the fields governed by one step number.
type StepValidator func(step int, values map[string]any) Errors

// NewStepValidator binds per-step rule sets. Steps without rules always
// validate.
func NewStepValidator(byStep map[int]StepRules, label func(key string) string) StepValidator {
	rules := make(map[int]StepRules, len(byStep))
	for step, stepRules := range byStep {
		rules[step] = stepRules
	}
	return func(step int, values map[string]any) Errors {
		stepRules, ok := rules[step]
		if !ok {
			return nil
		}
		return ValidateStepLabeled(stepRules, values, label)
	}
}

func requiredMessage(fieldName string) string {
	return fieldName + " is required"
}

// isEmpty treats nil, whitespace-only text and empty sets as not provided.
func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	default:
		return false
	}
}

func countDigits(value string) int {
	count := 0
	for _, r := range value {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			count++
		}
	}
	return count
}
