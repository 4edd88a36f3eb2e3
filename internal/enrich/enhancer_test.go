package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

func TestEnhanceTitle(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		domain string
		want   string
	}{
		{"empty title", "", "example.org", "Content from example.org"},
		{"title equals domain", "example.org", "example.org", "Content from example.org"},
		{"strips pipe suffix", "Getting Started | React", "react.dev", "Getting Started"},
		{"strips dash suffix", "Intro - My Blog", "example.org", "Intro"},
		{"strips bullet suffix", "Post • Site", "example.org", "Post"},
		{"capitalizes first rune", "some title", "example.org", "Some title"},
		{"leading separator kept", "| weird", "example.org", "| weird"},
		{"plain title unchanged", "Hello World", "example.org", "Hello World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnhanceTitle(tt.title, tt.domain))
		})
	}
}

func TestComposeDescription(t *testing.T) {
	tests := []struct {
		name    string
		message string
		scraped string
		want    string
	}{
		{"message and scraped", "my note", "page summary", "my note\n\npage summary"},
		{"message only", "my note", "", "my note"},
		{"scraped only", "", "page summary", "page summary"},
		{"neither", "", "", "Bookmark saved from example.org via Telegram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeDescription(tt.message, tt.scraped, "example.org", domain.SourceTelegram)
			assert.Equal(t, tt.want, got)
		})
	}
}
