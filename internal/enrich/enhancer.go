package enrich

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

// titleSeparators are site-name suffixes stripped from scraped titles,
// e.g. "Getting Started | React" becomes "Getting Started".
var titleSeparators = []string{"|", "-", "•"}

// EnhanceTitle cleans up a scraped title. An empty title, or one that
// is just the domain, is replaced with a generic placeholder.
func EnhanceTitle(title, dom string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || trimmed == dom {
		return fmt.Sprintf("Content from %s", dom)
	}

	cleaned := trimmed
	for _, sep := range titleSeparators {
		if idx := strings.LastIndex(cleaned, sep); idx > 0 {
			cleaned = strings.TrimSpace(cleaned[:idx])
		}
	}
	if cleaned == "" {
		return trimmed
	}

	runes := []rune(cleaned)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ComposeDescription builds the stored description. The user's own
// message takes precedence and is kept verbatim ahead of the scraped
// description.
func ComposeDescription(userMessage, scraped, dom string, source domain.Source) string {
	userMessage = strings.TrimSpace(userMessage)
	scraped = strings.TrimSpace(scraped)

	switch {
	case userMessage != "" && scraped != "":
		return userMessage + "\n\n" + scraped
	case userMessage != "":
		return userMessage
	case scraped != "":
		return scraped
	default:
		return fmt.Sprintf("Bookmark saved from %s via %s", dom, source.Label())
	}
}
