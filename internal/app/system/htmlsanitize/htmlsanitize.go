// Package htmlsanitize cleans the configurable notice banner before it
// is rendered above the dashboard. The banner comes from config, not
// from end users, but it still goes through bluemonday so a careless
// value cannot inject script into every page.
package htmlsanitize

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy builds the banner policy once. The banner is a short line
// of text with optional links and emphasis; nothing structural is
// allowed.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.NewPolicy()
		policy.AllowElements("a", "b", "strong", "i", "em", "br", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireNoFollowOnLinks(true)
	})
	return policy
}

// Sanitize strips everything the banner policy does not allow.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeToHTML sanitizes and marks the result safe for direct
// template rendering.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}
