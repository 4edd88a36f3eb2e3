package domain

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag is a user-scoped label attachable to many bookmarks.
// (UserID, Name) is unique per user; names are stored lowercased.
type Tag struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
}

// TagUsage pairs a tag with how many bookmarks carry it.
type TagUsage struct {
	Name  string
	Color string
	Count int
}

// tagPalette is the fixed color set used when a tag is created without
// an explicit color.
var tagPalette = []string{
	"#ef4444", "#f97316", "#eab308", "#22c55e", "#06b6d4",
	"#3b82f6", "#8b5cf6", "#ec4899", "#6b7280",
}

// RandomTagColor picks a color from the fixed palette.
func RandomTagColor() string {
	return tagPalette[rand.Intn(len(tagPalette))]
}

// NormalizeTagName prepares a tag name for storage and comparison:
// trimmed, lowercased. Find-or-create during enrichment keys on this form.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTagNames normalizes a list, dropping empties and duplicates
// while preserving first-seen order.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = NormalizeTagName(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
