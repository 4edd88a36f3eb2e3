package bookmark

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

// Delete removes a bookmark and its tag links.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.bookmarks.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "bookmark deleted",
		slog.String("bookmark_id", id.String()),
		slog.String("user_id", userID.String()))

	return nil
}
