package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/internal/service/ingest"
)

// ingestService defines the minimal interface needed by ExtractHandler.
type ingestService interface {
	CreateFromURL(ctx context.Context, rawURL, userMessage, email string, source domain.Source) (*ingest.Result, error)
	CreateFromText(ctx context.Context, text, email string, source domain.Source) ([]ingest.URLOutcome, error)
}

// ExtractHandler serves the assistant front-door endpoint: it accepts a
// URL or free text, runs the shared enrichment pipeline, and saves the
// resulting bookmarks.
type ExtractHandler struct {
	svc ingestService
	log *slog.Logger
}

// NewExtractHandler creates an ExtractHandler.
func NewExtractHandler(svc ingestService, logger *slog.Logger) *ExtractHandler {
	return &ExtractHandler{svc: svc, log: logger.With("handler", "extract")}
}

// extractRequest carries either a single URL with optional message
// context, or free text to scan for URLs. Email optionally names the
// owning user for key-authenticated callers.
type extractRequest struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	Text    string `json:"text"`
	Email   string `json:"email"`
}

type extractResultResponse struct {
	URL      string            `json:"url"`
	Saved    bool              `json:"saved"`
	Error    string            `json:"error,omitempty"`
	Bookmark *bookmarkResponse `json:"bookmark,omitempty"`
	Degraded bool              `json:"degraded,omitempty"`
}

// Extract handles POST /api/ai/extract-bookmark.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decodeBody(w, r, &req) {
		return
	}

	switch {
	case req.URL != "":
		res, err := h.svc.CreateFromURL(r.Context(), req.URL, req.Message, req.Email, domain.SourceManual)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		b := toBookmarkResponse(res.Bookmark)
		writeJSON(w, http.StatusCreated, extractResultResponse{
			URL:      req.URL,
			Saved:    true,
			Bookmark: &b,
			Degraded: res.Degraded,
		})

	case req.Text != "":
		outcomes, err := h.svc.CreateFromText(r.Context(), req.Text, req.Email, domain.SourceManual)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		results := make([]extractResultResponse, len(outcomes))
		for i, o := range outcomes {
			results[i] = extractResultResponse{URL: o.URL}
			if o.Err != nil {
				results[i].Error = o.Err.Error()
				continue
			}
			b := toBookmarkResponse(o.Result.Bookmark)
			results[i].Saved = true
			results[i].Bookmark = &b
			results[i].Degraded = o.Result.Degraded
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})

	default:
		writeError(w, http.StatusBadRequest, "url or text is required")
	}
}
