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

// Update applies a partial update to a bookmark. Moving into a terminal
// status (REVIEWED, ARCHIVED, DISCARDED) stamps reviewed_at, also on
// repeat entries; it is never cleared once set, not even on a move back
// to TODO. When TagsSet is true the tag set is replaced wholesale.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxTitleLen); err != nil {
		return nil, err
	}

	b, err := s.bookmarks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if input.Title != nil {
		b.Title = *input.Title
	}
	if input.Description != nil {
		b.Description = input.Description
	}
	if input.Priority != nil {
		b.Priority, _ = domain.ParsePriority(*input.Priority)
	}
	if input.Status != nil {
		status, _ := domain.ParseStatus(*input.Status)
		b.Status = status
		if status.IsTerminal() {
			b.ReviewedAt = &now
		}
	}
	b.UpdatedAt = now

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.bookmarks.Update(txCtx, b); err != nil {
			return fmt.Errorf("update bookmark: %w", err)
		}
		if input.TagsSet {
			b.Tags = nil
			if err := s.tags.ReplaceBookmarkTags(txCtx, b.ID, nil); err != nil {
				return fmt.Errorf("clear bookmark tags: %w", err)
			}
			return s.attachTags(txCtx, b, input.Tags)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "bookmark updated",
		slog.String("bookmark_id", b.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("status", string(b.Status)))

	return b, nil
}
