package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bookmark is a saved URL with review-workflow status and priority.
// A freshly created bookmark always has Status=TODO and ReviewedAt=nil,
// regardless of entry point. ReviewedAt is stamped when the status
// transitions into a terminal state and is never reset by ordinary mutation.
type Bookmark struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	URL         string
	Title       string
	Description *string
	FaviconURL  *string
	Priority    Priority
	Status      BookmarkStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ReviewedAt  *time.Time

	// Tags are the resolved tag rows attached via bookmark_tags.
	// Populated by read paths that join the association table.
	Tags []Tag
}

// TagNames returns the attached tag names in association order.
func (b *Bookmark) TagNames() []string {
	names := make([]string, len(b.Tags))
	for i, t := range b.Tags {
		names[i] = t.Name
	}
	return names
}

// BookmarkUpdateParams carries a partial update. Nil means "leave unchanged".
// Tags, when non-nil, fully replaces the bookmark's tag associations.
type BookmarkUpdateParams struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *BookmarkStatus
	Tags        []string
	TagsSet     bool
}

// ExtractDomain returns the hostname of a URL without a leading "www.".
// Returns "unknown" for unparseable input.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// BaseDomainLabel returns the first DNS label of a domain
// ("github" from "github.com"). Empty for the literal "www".
func BaseDomainLabel(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	if label == "www" {
		return ""
	}
	return label
}

// FaviconURL derives a favicon URL for a domain.
func FaviconURL(domain string) string {
	return "https://www.google.com/s2/favicons?domain=" + domain + "&sz=32"
}

// ValidateAbsoluteURL reports whether raw parses as an absolute
// http(s) URL with a host.
func ValidateAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
