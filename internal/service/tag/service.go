// Package tag implements tag management: listing, creation, and
// deletion. Attaching tags to bookmarks lives in the bookmark service.
package tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

const maxTagNameLen = 50

type tagRepo interface {
	Upsert(ctx context.Context, userID uuid.UUID, name, color string) (*domain.Tag, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service provides tag management operations.
type Service struct {
	log  *slog.Logger
	tags tagRepo
}

// NewService creates a new Tag service.
func NewService(logger *slog.Logger, tags tagRepo) *Service {
	return &Service{
		log:  logger.With("service", "tag"),
		tags: tags,
	}
}

// List returns all of the user's tags ordered by name.
func (s *Service) List(ctx context.Context) ([]*domain.Tag, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.tags.ListByUser(ctx, userID)
}

// Create finds or creates a tag by name. The name is normalized before
// storage; creating an existing tag returns the stored row unchanged.
func (s *Service) Create(ctx context.Context, name, color string) (*domain.Tag, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	normalized := domain.NormalizeTagName(name)
	if normalized == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if len(normalized) > maxTagNameLen {
		return nil, domain.NewValidationError("name", fmt.Sprintf("too long (max %d)", maxTagNameLen))
	}
	if color == "" {
		color = domain.RandomTagColor()
	}

	tag, err := s.tags.Upsert(ctx, userID, normalized, color)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tag created",
		slog.String("tag_id", tag.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("name", tag.Name))

	return tag, nil
}

// Delete removes the user's tag and all its bookmark links.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.tags.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "tag deleted",
		slog.String("tag_id", id.String()),
		slog.String("user_id", userID.String()))

	return nil
}
