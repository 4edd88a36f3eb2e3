package domain

// BookmarkFilter narrows bookmark list queries. Zero values mean
// "no constraint"; Search matches title, description, and URL
// case-insensitively; Tag matches an attached tag name.
type BookmarkFilter struct {
	Status   *BookmarkStatus
	Priority *Priority
	Tag      string
	Search   string
	Limit    int
	Offset   int
}
