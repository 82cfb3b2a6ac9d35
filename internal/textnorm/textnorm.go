// Package textnorm cleans strings lifted out of rendered post markup.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	hashtagPrefix = regexp.MustCompile(`(?i)hashtag#`)
	repeatedHash  = regexp.MustCompile(`##+`)
	whitespace    = regexp.MustCompile(`\s+`)
	hashtagWord   = regexp.MustCompile(`(?i)\bhashtag\b`)

	strict = bluemonday.StrictPolicy()
)

// CleanText fixes hashtag artifacts and collapses whitespace.
// Example: "hashtag#sample  \n\n hashtag#growth" -> "#sample #growth"
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	cleaned := hashtagPrefix.ReplaceAllString(text, "#")
	cleaned = repeatedHash.ReplaceAllString(cleaned, "#")
	cleaned = strings.TrimSpace(whitespace.ReplaceAllString(cleaned, " "))
	cleaned = hashtagWord.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(whitespace.ReplaceAllString(cleaned, " "))
}

// Sanitize strips markup and escapes the rest so the result is safe to render as HTML.
// Stored text stays plain; call this only where text is written into markup.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(text))
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
