package uischema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicyOnce sync.Once
	richPolicy     *bluemonday.Policy
	strictPolicy   = bluemonday.StrictPolicy()
)

// plainText strips every tag. Labels, titles and legends are escaped by the
// renderers, so the entities bluemonday emits are decoded again.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(trimmed)))
}

// richText keeps inline formatting and safe links in descriptions.
func richText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	richPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		richPolicy = policy
	})
	return richPolicy
}
