// Package sanitize is the single boundary through which user-authored HTML
// (request messages, resolution messages, project descriptions) reaches a page.
package sanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// HTML returns raw with every script-capable construct removed, marked safe for templates
func HTML(raw string) template.HTML {
	return template.HTML(policy.Sanitize(raw))
}

// String is HTML for callers that forward the result rather than render it
func String(raw string) string {
	return policy.Sanitize(raw)
}

// Text strips all markup, used for notice bodies and log fields
func Text(raw string) string {
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(raw))
}
