package enrich

import (
	"strings"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

// maxTags caps the number of tags a single bookmark can receive from
// the heuristics.
const maxTags = 6

// domainRule maps a domain substring to a fixed tag set. Rules are
// ordered; the first match wins.
type domainRule struct {
	pattern string
	tags    []string
}

var domainRules = []domainRule{
	{"github", []string{"code", "development", "opensource"}},
	{"stackoverflow", []string{"programming", "question", "help"}},
	{"medium", []string{"article", "blog", "reading"}},
	{"dev.to", []string{"development", "blog", "community"}},
	{"youtube", []string{"video", "tutorial", "media"}},
	{"twitter", []string{"social", "tweet", "news"}},
	{"reddit", []string{"discussion", "community", "social"}},
	{"docs.google", []string{"document", "collaboration"}},
	{"notion.so", []string{"productivity", "notes"}},
	{"figma", []string{"design", "ui", "collaboration"}},
	{"vercel", []string{"deployment", "hosting", "frontend"}},
	{"netlify", []string{"deployment", "hosting", "jamstack"}},
}

// contentRule maps a keyword found in the page title or description to
// a tag set. Unlike domain rules, every matching content rule
// contributes.
type contentRule struct {
	keyword string
	tags    []string
}

var contentRules = []contentRule{
	{"react", []string{"react", "frontend", "javascript"}},
	{"vue", []string{"vue", "frontend", "javascript"}},
	{"angular", []string{"angular", "frontend", "typescript"}},
	{"node", []string{"nodejs", "backend", "javascript"}},
	{"python", []string{"python", "programming"}},
	{"javascript", []string{"javascript", "programming"}},
	{"typescript", []string{"typescript", "programming"}},
	{"css", []string{"css", "styling", "frontend"}},
	{"html", []string{"html", "frontend", "markup"}},
	{"api", []string{"api", "backend", "integration"}},
	{"database", []string{"database", "data", "backend"}},
	{"tutorial", []string{"tutorial", "learning"}},
	{"guide", []string{"guide", "documentation"}},
	{"documentation", []string{"docs", "reference"}},
	{"news", []string{"news", "updates"}},
	{"tool", []string{"tools", "productivity"}},
	{"design", []string{"design", "ui", "ux"}},
}

// SuggestTags derives tags from the bookmark's domain, its scraped
// title and description, and the user's accompanying message. The
// result is deduplicated, preserves first-seen order, and holds at most
// maxTags entries.
func SuggestTags(meta Metadata, userMessage string) []string {
	var tags []string

	for _, rule := range domainRules {
		if strings.Contains(meta.Domain, rule.pattern) {
			tags = append(tags, rule.tags...)
			break
		}
	}

	content := strings.ToLower(meta.Title + " " + meta.Description)
	for _, rule := range contentRules {
		if strings.Contains(content, rule.keyword) {
			tags = append(tags, rule.tags...)
		}
	}

	msg := strings.ToLower(userMessage)
	if strings.Contains(msg, "important") || strings.Contains(msg, "urgent") {
		tags = append(tags, "important")
	}
	if strings.Contains(msg, "read later") || strings.Contains(msg, "todo") {
		tags = append(tags, "read-later")
	}
	if strings.Contains(msg, "work") || strings.Contains(msg, "project") {
		tags = append(tags, "work")
	}
	if strings.Contains(msg, "personal") {
		tags = append(tags, "personal")
	}

	if label := domain.BaseDomainLabel(meta.Domain); label != "" {
		tags = append(tags, label)
	}

	tags = domain.NormalizeTagNames(tags)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}
