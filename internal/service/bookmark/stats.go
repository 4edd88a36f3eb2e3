package bookmark

import (
	"context"
	"fmt"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

const (
	recentBookmarksLimit = 5
	topTagsLimit         = 5
)

// Stats summarizes the user's collection.
type Stats struct {
	Total      int
	ByStatus   map[domain.BookmarkStatus]int
	ByPriority map[domain.Priority]int
	TagCount   int
	Recent     []*domain.Bookmark
	TopTags    []domain.TagUsage
}

// GetStats returns bookmark counts by status and priority, the tag
// count, the five newest bookmarks, and the five most used tags.
// Statuses and priorities with no bookmarks are present with a zero
// count.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	statuses, err := s.bookmarks.StatusCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	priorities, err := s.bookmarks.PriorityCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("priority counts: %w", err)
	}
	tags, err := s.tags.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	topTags, err := s.tags.TopUsed(ctx, userID, topTagsLimit)
	if err != nil {
		return nil, fmt.Errorf("top tags: %w", err)
	}
	recent, err := s.bookmarks.List(ctx, userID, domain.BookmarkFilter{Limit: recentBookmarksLimit})
	if err != nil {
		return nil, fmt.Errorf("recent bookmarks: %w", err)
	}

	stats := &Stats{
		ByStatus:   make(map[domain.BookmarkStatus]int, len(domain.AllStatuses)),
		ByPriority: make(map[domain.Priority]int, len(domain.AllPriorities)),
		TagCount:   len(tags),
		Recent:     recent,
		TopTags:    topTags,
	}
	for _, status := range domain.AllStatuses {
		stats.ByStatus[status] = statuses[status]
		stats.Total += statuses[status]
	}
	for _, priority := range domain.AllPriorities {
		stats.ByPriority[priority] = priorities[priority]
	}

	return stats, nil
}
