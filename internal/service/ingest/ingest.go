package ingest

import (
	"context"
	"log/slog"

	"github.com/vkuzmenko/linkmark/internal/domain"
	bookmarksvc "github.com/vkuzmenko/linkmark/internal/service/bookmark"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

// Result is the outcome of ingesting a single URL.
type Result struct {
	Bookmark *domain.Bookmark
	TagNames []string
	Degraded bool
}

// URLOutcome reports one URL from a multi-URL message. Exactly one of
// Result and Err is set.
type URLOutcome struct {
	URL    string
	Result *Result
	Err    error
}

// ResolveUser runs the identity resolution chain for a channel request.
// Webhook handlers use it for operations that need a user but do not
// create bookmarks, such as the stats command.
func (s *Service) ResolveUser(ctx context.Context, email string) (*domain.User, error) {
	return s.identity.Resolve(ctx, email)
}

// CreateFromURL enriches a single URL and saves it as a TODO bookmark
// for the resolved user. Email may be empty; identity then falls back
// through the configured default, the first user, and finally a
// freshly created default user.
func (s *Service) CreateFromURL(ctx context.Context, rawURL, userMessage, email string, source domain.Source) (*Result, error) {
	if !domain.ValidateAbsoluteURL(rawURL) {
		return nil, domain.NewValidationError("url", "must be an absolute http(s) URL")
	}

	user, err := s.identity.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	ctx = ctxutil.WithUserID(ctx, user.ID)
	ctx = ctxutil.WithChannel(ctx, string(source))

	enrichment := s.enricher.Enrich(ctx, rawURL, userMessage, source)

	description := enrichment.Description
	favicon := enrichment.FaviconURL
	b, err := s.bookmarks.Create(ctx, bookmarksvc.CreateInput{
		URL:         rawURL,
		Title:       enrichment.Title,
		Description: &description,
		FaviconURL:  &favicon,
		Priority:    enrichment.Priority,
		Tags:        enrichment.Tags,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "url ingested",
		slog.String("url", rawURL),
		slog.String("source", string(source)),
		slog.String("bookmark_id", b.ID.String()),
		slog.Bool("degraded", enrichment.Degraded))

	return &Result{
		Bookmark: b,
		TagNames: b.TagNames(),
		Degraded: enrichment.Degraded,
	}, nil
}

// CreateFromText extracts every URL from a chat message and ingests
// them sequentially in order of appearance. The message with URLs
// stripped becomes the shared user context for tagging and priority.
// A failing URL does not stop the rest; its outcome carries the error.
// Returns domain.ErrNotFound when the text contains no URLs.
func (s *Service) CreateFromText(ctx context.Context, text, email string, source domain.Source) ([]URLOutcome, error) {
	urls := domain.ExtractURLs(text)
	if len(urls) == 0 {
		return nil, domain.ErrNotFound
	}
	userMessage := domain.StripURLs(text)

	outcomes := make([]URLOutcome, 0, len(urls))
	for _, u := range urls {
		res, err := s.CreateFromURL(ctx, u, userMessage, email, source)
		if err != nil {
			s.log.ErrorContext(ctx, "url ingestion failed",
				slog.String("url", u),
				slog.String("source", string(source)),
				slog.String("error", err.Error()))
			outcomes = append(outcomes, URLOutcome{URL: u, Err: err})
			continue
		}
		outcomes = append(outcomes, URLOutcome{URL: u, Result: res})
	}

	return outcomes, nil
}
