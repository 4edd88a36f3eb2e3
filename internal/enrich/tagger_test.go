package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestTags_DomainRules(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   []string
	}{
		{"github", "github.com", []string{"code", "development", "opensource", "github"}},
		{"stackoverflow", "stackoverflow.com", []string{"programming", "question", "help", "stackoverflow"}},
		{"dev.to", "dev.to", []string{"development", "blog", "community", "dev"}},
		{"notion", "notion.so", []string{"productivity", "notes", "notion"}},
		{"google docs", "docs.google.com", []string{"document", "collaboration", "docs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestTags(Metadata{Domain: tt.domain}, "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestTags_FirstDomainRuleWins(t *testing.T) {
	// A GitHub Pages-like domain containing two patterns must only
	// trigger the earliest rule.
	got := SuggestTags(Metadata{Domain: "github.medium.com"}, "")
	assert.Contains(t, got, "code")
	assert.NotContains(t, got, "article")
}

func TestSuggestTags_ContentRulesAccumulate(t *testing.T) {
	meta := Metadata{
		Domain:      "example.org",
		Title:       "React tutorial",
		Description: "a CSS guide",
	}
	got := SuggestTags(meta, "")
	assert.Contains(t, got, "react")
	assert.Contains(t, got, "frontend")
	assert.Contains(t, got, "tutorial")
	assert.Contains(t, got, "css")
}

func TestSuggestTags_AngularIsTypescript(t *testing.T) {
	got := SuggestTags(Metadata{Domain: "example.org", Title: "Angular forms"}, "")
	assert.Contains(t, got, "angular")
	assert.Contains(t, got, "typescript")
	assert.NotContains(t, got, "javascript")
}

func TestSuggestTags_UserMessage(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"this is IMPORTANT", "important"},
		{"urgent please", "important"},
		{"read later", "read-later"},
		{"add to my todo", "read-later"},
		{"for work", "work"},
		{"new project idea", "work"},
		{"personal stuff", "personal"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := SuggestTags(Metadata{Domain: "example.org"}, tt.message)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestSuggestTags_BaseDomainLabel(t *testing.T) {
	got := SuggestTags(Metadata{Domain: "blog.example.org"}, "")
	assert.Contains(t, got, "blog")

	// The bare "www" label is never a useful tag.
	got = SuggestTags(Metadata{Domain: "www.example.org"}, "")
	assert.NotContains(t, got, "www")
}

func TestSuggestTags_CapAndDedupe(t *testing.T) {
	meta := Metadata{
		Domain:      "github.com",
		Title:       "React TypeScript tutorial",
		Description: "node api database guide",
	}
	got := SuggestTags(meta, "important work project")

	assert.LessOrEqual(t, len(got), maxTags)
	seen := make(map[string]bool, len(got))
	for _, tag := range got {
		assert.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
	}
	// Domain rules come first, so the GitHub set survives the cap.
	assert.Contains(t, got, "code")
}

func TestSuggestTags_NoSignals(t *testing.T) {
	got := SuggestTags(Metadata{Domain: "example.org"}, "")
	assert.Equal(t, []string{"example"}, got)
}
