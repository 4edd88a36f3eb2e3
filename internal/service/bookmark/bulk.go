package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

// BulkResult reports the outcome of a bulk action. Affected is an
// aggregate row count; per-ID outcomes are not reported. IDs the user
// does not own are skipped silently.
type BulkResult struct {
	Action   domain.BulkAction
	Affected int64
}

// Bulk applies one action to a set of the user's bookmarks.
func (s *Service) Bulk(ctx context.Context, input BulkInput) (*BulkResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var affected int64
	var err error

	switch input.Action {
	case domain.BulkArchive:
		affected, err = s.updateStatusBulk(ctx, input, domain.StatusArchived)
	case domain.BulkDiscard:
		affected, err = s.updateStatusBulk(ctx, input, domain.StatusDiscarded)
	case domain.BulkMarkReviewed:
		affected, err = s.updateStatusBulk(ctx, input, domain.StatusReviewed)
	case domain.BulkDelete:
		affected, err = s.bookmarks.DeleteBulk(ctx, userID, input.IDs)
	case domain.BulkSetPriority:
		priority, _ := domain.ParsePriority(input.Value)
		affected, err = s.bookmarks.UpdatePriorityBulk(ctx, userID, input.IDs, priority)
	case domain.BulkAddTag:
		affected, err = s.addTagBulk(ctx, input)
	case domain.BulkRemoveTag:
		affected, err = s.removeTagBulk(ctx, input)
	default:
		return nil, domain.NewValidationError("action", "invalid value")
	}
	if err != nil {
		return nil, fmt.Errorf("bulk %s: %w", input.Action, err)
	}

	s.log.InfoContext(ctx, "bulk action applied",
		slog.String("action", string(input.Action)),
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(input.IDs)),
		slog.Int64("affected", affected))

	return &BulkResult{Action: input.Action, Affected: affected}, nil
}

// updateStatusBulk moves bookmarks into a terminal status, stamping
// reviewed_at on every row it touches.
func (s *Service) updateStatusBulk(ctx context.Context, input BulkInput, status domain.BookmarkStatus) (int64, error) {
	userID, _ := ctxutil.UserIDFromCtx(ctx)
	now := time.Now().UTC()
	return s.bookmarks.UpdateStatusBulk(ctx, userID, input.IDs, status, &now)
}

// addTagBulk upserts the tag once, then links it to every owned
// bookmark. Affected counts owned bookmarks, including ones that
// already carried the tag.
func (s *Service) addTagBulk(ctx context.Context, input BulkInput) (int64, error) {
	userID, _ := ctxutil.UserIDFromCtx(ctx)

	tag, err := s.tags.Upsert(ctx, userID, input.Value, domain.RandomTagColor())
	if err != nil {
		return 0, fmt.Errorf("upsert tag: %w", err)
	}

	return s.tags.LinkBulk(ctx, userID, input.IDs, tag.ID)
}

// removeTagBulk unlinks the tag from every owned bookmark. A tag the
// user never created affects zero rows rather than failing.
func (s *Service) removeTagBulk(ctx context.Context, input BulkInput) (int64, error) {
	userID, _ := ctxutil.UserIDFromCtx(ctx)

	tag, err := s.tags.GetByName(ctx, userID, input.Value)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get tag: %w", err)
	}

	return s.tags.UnlinkBulk(ctx, userID, input.IDs, tag.ID)
}
