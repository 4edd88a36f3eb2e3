// Package bookmark implements the bookmark lifecycle business logic:
// create, update, list, delete, bulk actions, import, and stats.
package bookmark

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/config"
	"github.com/vkuzmenko/linkmark/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type bookmarkRepo interface {
	Create(ctx context.Context, b *domain.Bookmark) error
	Update(ctx context.Context, b *domain.Bookmark) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Bookmark, error)
	GetByURL(ctx context.Context, userID uuid.UUID, url string) (*domain.Bookmark, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.BookmarkFilter) ([]*domain.Bookmark, error)
	UpdateStatusBulk(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, status domain.BookmarkStatus, reviewedAt *time.Time) (int64, error)
	UpdatePriorityBulk(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, priority domain.Priority) (int64, error)
	DeleteBulk(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	StatusCounts(ctx context.Context, userID uuid.UUID) (map[domain.BookmarkStatus]int, error)
	PriorityCounts(ctx context.Context, userID uuid.UUID) (map[domain.Priority]int, error)
}

type tagRepo interface {
	Upsert(ctx context.Context, userID uuid.UUID, name, color string) (*domain.Tag, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	TopUsed(ctx context.Context, userID uuid.UUID, limit int) ([]domain.TagUsage, error)
	Link(ctx context.Context, bookmarkID, tagID uuid.UUID) error
	ReplaceBookmarkTags(ctx context.Context, bookmarkID uuid.UUID, tagIDs []uuid.UUID) error
	LinkBulk(ctx context.Context, userID uuid.UUID, bookmarkIDs []uuid.UUID, tagID uuid.UUID) (int64, error)
	UnlinkBulk(ctx context.Context, userID uuid.UUID, bookmarkIDs []uuid.UUID, tagID uuid.UUID) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the bookmark business logic.
type Service struct {
	log       *slog.Logger
	bookmarks bookmarkRepo
	tags      tagRepo
	tx        txManager
	cfg       config.BookmarksConfig
}

// NewService creates a new Bookmark service.
func NewService(
	logger *slog.Logger,
	bookmarks bookmarkRepo,
	tags tagRepo,
	tx txManager,
	cfg config.BookmarksConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "bookmark"),
		bookmarks: bookmarks,
		tags:      tags,
		tx:        tx,
		cfg:       cfg,
	}
}

// attachTags upserts the named tags for the user and links them to the
// bookmark, filling b.Tags in order.
func (s *Service) attachTags(ctx context.Context, b *domain.Bookmark, names []string) error {
	for _, name := range domain.NormalizeTagNames(names) {
		tag, err := s.tags.Upsert(ctx, b.UserID, name, domain.RandomTagColor())
		if err != nil {
			return err
		}
		if err := s.tags.Link(ctx, b.ID, tag.ID); err != nil {
			return err
		}
		b.Tags = append(b.Tags, *tag)
	}
	return nil
}
