package domain

import "strings"

// BookmarkStatus represents the review-workflow state of a bookmark.
// TODO is the sole initial state; the other three are terminal with
// respect to automated enrichment but remain mutable by the user.
type BookmarkStatus string

const (
	StatusTodo      BookmarkStatus = "TODO"
	StatusReviewed  BookmarkStatus = "REVIEWED"
	StatusArchived  BookmarkStatus = "ARCHIVED"
	StatusDiscarded BookmarkStatus = "DISCARDED"
)

func (s BookmarkStatus) String() string { return string(s) }

func (s BookmarkStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusReviewed, StatusArchived, StatusDiscarded:
		return true
	}
	return false
}

// IsTerminal reports whether entering this status stamps reviewed_at.
func (s BookmarkStatus) IsTerminal() bool {
	switch s {
	case StatusReviewed, StatusArchived, StatusDiscarded:
		return true
	}
	return false
}

// Priority represents the review priority of a bookmark.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// AllStatuses lists every status in workflow order.
var AllStatuses = []BookmarkStatus{StatusTodo, StatusReviewed, StatusArchived, StatusDiscarded}

// AllPriorities lists every priority from most to least urgent.
var AllPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority normalizes a case-insensitive priority value.
// Returns false if the value is not one of HIGH, MEDIUM, LOW.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// ParseStatus normalizes a case-insensitive status value.
func ParseStatus(s string) (BookmarkStatus, bool) {
	st := BookmarkStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.IsValid()
}

// Source identifies the channel a bookmark arrived through.
type Source string

const (
	SourceManual   Source = "manual"
	SourceTelegram Source = "telegram"
	SourceWhatsApp Source = "whatsapp"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceTelegram, SourceWhatsApp:
		return true
	}
	return false
}

// Label returns the human-readable channel name used in synthesized
// descriptions ("Bookmark saved from example.com via Telegram").
func (s Source) Label() string {
	switch s {
	case SourceTelegram:
		return "Telegram"
	case SourceWhatsApp:
		return "WhatsApp"
	default:
		return "web"
	}
}

// BulkAction identifies a bulk operation over a set of bookmarks.
type BulkAction string

const (
	BulkArchive      BulkAction = "archive"
	BulkDiscard      BulkAction = "discard"
	BulkMarkReviewed BulkAction = "mark_reviewed"
	BulkDelete       BulkAction = "delete"
	BulkAddTag       BulkAction = "add_tag"
	BulkRemoveTag    BulkAction = "remove_tag"
	BulkSetPriority  BulkAction = "set_priority"
)

func (a BulkAction) String() string { return string(a) }

func (a BulkAction) IsValid() bool {
	switch a {
	case BulkArchive, BulkDiscard, BulkMarkReviewed, BulkDelete,
		BulkAddTag, BulkRemoveTag, BulkSetPriority:
		return true
	}
	return false
}

// RequiresValue reports whether the action needs an accompanying value
// (a tag name or a priority level).
func (a BulkAction) RequiresValue() bool {
	switch a {
	case BulkAddTag, BulkRemoveTag, BulkSetPriority:
		return true
	}
	return false
}
