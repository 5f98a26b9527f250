package services

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// SanitizeHeaderText turns visitor input into a single line of plain text
// safe for an email header: markup is stripped and line breaks collapse to
// spaces so the value cannot smuggle extra headers.
func SanitizeHeaderText(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})

	// bluemonday escapes what it keeps; the header wants the literal text back
	plain := html.UnescapeString(strictPolicy.Sanitize(s))
	plain = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == '\t' {
			return ' '
		}
		return r
	}, plain)
	return strings.Join(strings.Fields(plain), " ")
}

// nl2br converts line breaks in already-escaped text to <br> tags
func nl2br(escaped string) string {
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\r", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}
