package domain

import (
	"regexp"
	"strings"
)

// urlPattern is a permissive http(s) scan: scheme followed by any run of
// non-whitespace. Trailing sentence punctuation is trimmed afterwards so
// "check https://example.com/page." yields a clean URL.
var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// ExtractURLs returns all URLs found in free-form text, in order of
// appearance, with trailing punctuation trimmed.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, strings.TrimRight(m, ".,;!?"))
	}
	return urls
}

// StripURLs removes every URL from the text and trims the remainder.
// The result is the shared user context for all URLs found in a message.
func StripURLs(text string) string {
	return strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
}
