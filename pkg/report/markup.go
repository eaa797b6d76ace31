package report

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sectionPolicyOnce sync.Once
	sectionPolicy     *bluemonday.Policy

	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

func sectionSanitizer() *bluemonday.Policy {
	sectionPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("p", "strong", "br")
		sectionPolicy = policy
	})
	return sectionPolicy
}

func stripSanitizer() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}

// Sanitize drops any markup outside the section allow-list (<p>, <strong>,
// <br>).
func Sanitize(markup string) string {
	return strings.TrimSpace(sectionSanitizer().Sanitize(markup))
}

var blockBreaks = strings.NewReplacer(
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
	"</p>", "</p>\n",
)

// PlainText turns section markup into plain text: line breaks and paragraph
// boundaries become newlines, tags are removed and entities decoded.
func PlainText(markup string) string {
	text := blockBreaks.Replace(markup)
	text = stripSanitizer().Sanitize(text)
	return strings.TrimSpace(html.UnescapeString(text))
}

func escape(s string) string {
	return html.EscapeString(s)
}
