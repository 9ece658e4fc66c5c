// Package sanitizer strips markup from untrusted text.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     *bluemonday.Policy
	strictOnce sync.Once
)

func policy() *bluemonday.Policy {
	strictOnce.Do(func() { strict = bluemonday.StrictPolicy() })
	return strict
}

// PlainText removes every HTML element from s and returns readable text:
// entities are decoded and surrounding whitespace trimmed. The result is not
// safe to embed in HTML unescaped.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(policy().Sanitize(s)))
}

// SingleLine is PlainText with every run of whitespace, newlines included,
// collapsed into one space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(PlainText(s)), " ")
}
