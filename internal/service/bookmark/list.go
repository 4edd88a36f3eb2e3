package bookmark

import (
	"context"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

// Get returns a single bookmark with its tags.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.bookmarks.GetByID(ctx, userID, id)
}

// List returns the user's bookmarks matching the query, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	filter, err := input.ToFilter()
	if err != nil {
		return nil, err
	}

	return s.bookmarks.List(ctx, userID, filter)
}
