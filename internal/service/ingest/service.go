// Package ingest is the shared front door for every ingestion channel:
// the web extract endpoint, Telegram, and WhatsApp all funnel through
// the same enrich-then-create composition.
package ingest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/config"
	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/internal/enrich"
	bookmarksvc "github.com/vkuzmenko/linkmark/internal/service/bookmark"
)

type enricher interface {
	Enrich(ctx context.Context, rawURL, userMessage string, source domain.Source) enrich.Enrichment
}

type bookmarkCreator interface {
	Create(ctx context.Context, input bookmarksvc.CreateInput) (*domain.Bookmark, error)
}

type userRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	First(ctx context.Context) (*domain.User, error)
}

// Service turns raw URLs and chat messages into enriched bookmarks.
type Service struct {
	log       *slog.Logger
	enricher  enricher
	bookmarks bookmarkCreator
	users     userRepo
	identity  *identityResolver
}

// NewService creates a new Ingest service.
func NewService(
	logger *slog.Logger,
	enr enricher,
	bookmarks bookmarkCreator,
	users userRepo,
	cfg config.BookmarksConfig,
) *Service {
	log := logger.With("service", "ingest")
	return &Service{
		log:       log,
		enricher:  enr,
		bookmarks: bookmarks,
		users:     users,
		identity:  newIdentityResolver(log, users, cfg.DefaultUserID),
	}
}
