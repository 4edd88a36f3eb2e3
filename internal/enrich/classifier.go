package enrich

import (
	"strings"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

var highPriorityDomains = []string{"docs.", "documentation", "github.com", "stackoverflow.com"}

var mediumPriorityDomains = []string{"medium.com", "dev.to", "blog."}

var highPriorityKeywords = []string{"tutorial", "guide", "documentation"}

// ClassifyPriority assigns a priority level. The user's explicit intent
// in the message always wins over domain and content heuristics.
func ClassifyPriority(meta Metadata, userMessage string) domain.Priority {
	msg := strings.ToLower(userMessage)
	if strings.Contains(msg, "urgent") || strings.Contains(msg, "important") || strings.Contains(msg, "asap") {
		return domain.PriorityHigh
	}
	if strings.Contains(msg, "later") || strings.Contains(msg, "someday") {
		return domain.PriorityLow
	}

	for _, pattern := range highPriorityDomains {
		if strings.Contains(meta.Domain, pattern) {
			return domain.PriorityHigh
		}
	}
	for _, pattern := range mediumPriorityDomains {
		if strings.Contains(meta.Domain, pattern) {
			return domain.PriorityMedium
		}
	}

	content := strings.ToLower(meta.Title + " " + meta.Description)
	for _, keyword := range highPriorityKeywords {
		if strings.Contains(content, keyword) {
			return domain.PriorityHigh
		}
	}

	return domain.PriorityMedium
}
