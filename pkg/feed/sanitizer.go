package feed

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizerParams lists what survives sanitizing. Attributes are keyed by tag, "*" applies to all tags.
type SanitizerParams struct {
	Tags       []string
	Attributes map[string][]string
	Styles     []string
}

// Sanitizer strips entry html down to an allow-list, it never rejects content
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds a sanitizer from allow-lists
func NewSanitizer(params SanitizerParams) *Sanitizer {
	p := bluemonday.NewPolicy()
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")

	if len(params.Tags) > 0 {
		p.AllowElements(params.Tags...)
	}
	for tag, attrs := range params.Attributes {
		if len(attrs) == 0 {
			continue
		}
		if tag == "*" {
			p.AllowAttrs(attrs...).Globally()
			continue
		}
		p.AllowAttrs(attrs...).OnElements(tag)
	}
	if len(params.Styles) > 0 {
		p.AllowStyles(params.Styles...).Globally()
	}
	return &Sanitizer{policy: p}
}

// Sanitize returns html with disallowed tags, attributes and styles removed
func (s *Sanitizer) Sanitize(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return s.policy.Sanitize(html)
}
