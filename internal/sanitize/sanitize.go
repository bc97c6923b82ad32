// Package sanitize strips markup from free text before it is stored.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// maxPasses bounds the strip and decode loop in Text.
const maxPasses = 4

// Text removes every HTML element from raw and trims surrounding space.
// Entities escaped by the policy are decoded so plain punctuation such as
// ampersands and quotes survives. Decoding can reveal markup that was typed
// as entities, so the text is stripped again until it no longer changes.
// The result never contains an element the strict policy would remove.
func Text(raw string) string {
	current := strings.TrimSpace(raw)
	policy := textSanitizer()
	for range maxPasses {
		if current == "" {
			return ""
		}
		next := strings.TrimSpace(html.UnescapeString(policy.Sanitize(current)))
		if next == current {
			return current
		}
		current = next
	}
	// Still unstable: keep the escaped form so nothing decodes to markup.
	return strings.TrimSpace(policy.Sanitize(current))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
