package bookmark

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

// Create persists a new TODO bookmark with its tags. Re-saving a URL
// the user already bookmarked creates another row; only import dedupes
// by URL.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxTitleLen); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	favicon := input.FaviconURL
	if favicon == nil {
		derived := domain.FaviconURL(domain.ExtractDomain(input.URL))
		favicon = &derived
	}

	now := time.Now().UTC()
	b := &domain.Bookmark{
		ID:          uuid.New(),
		UserID:      userID,
		URL:         input.URL,
		Title:       input.Title,
		Description: input.Description,
		FaviconURL:  favicon,
		Priority:    priority,
		Status:      domain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.bookmarks.Create(txCtx, b); err != nil {
			return fmt.Errorf("create bookmark: %w", err)
		}
		return s.attachTags(txCtx, b, input.Tags)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "bookmark created",
		slog.String("bookmark_id", b.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("url", b.URL))

	return b, nil
}
