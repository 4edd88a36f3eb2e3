package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/internal/service/bookmark"
)

// bookmarkService defines the minimal interface needed by BookmarkHandler.
type bookmarkService interface {
	Create(ctx context.Context, input bookmark.CreateInput) (*domain.Bookmark, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error)
	List(ctx context.Context, input bookmark.ListInput) ([]*domain.Bookmark, error)
	Update(ctx context.Context, id uuid.UUID, input bookmark.UpdateInput) (*domain.Bookmark, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Bulk(ctx context.Context, input bookmark.BulkInput) (*bookmark.BulkResult, error)
	Import(ctx context.Context, input bookmark.ImportInput) (*bookmark.ImportResult, error)
	GetStats(ctx context.Context) (*bookmark.Stats, error)
}

// BookmarkHandler serves bookmark REST endpoints.
type BookmarkHandler struct {
	svc bookmarkService
	log *slog.Logger
}

// NewBookmarkHandler creates a BookmarkHandler.
func NewBookmarkHandler(svc bookmarkService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{svc: svc, log: logger.With("handler", "bookmarks")}
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type createBookmarkRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	FaviconURL  *string  `json:"favicon_url"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

// updateBookmarkRequest distinguishes "tags absent" from "tags: []" via
// the pointer: a nil Tags leaves the tag set untouched.
type updateBookmarkRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
}

type bulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
	Value  string   `json:"value"`
}

type importRequest struct {
	Items []importItemRequest `json:"items"`
}

type importItemRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Folder      string   `json:"folder"`
	Tags        []string `json:"tags"`
}

type tagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type bookmarkResponse struct {
	ID          string        `json:"id"`
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	FaviconURL  *string       `json:"favicon_url"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
	Tags        []tagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ReviewedAt  *time.Time    `json:"reviewed_at"`
}

func toBookmarkResponse(b *domain.Bookmark) bookmarkResponse {
	tags := make([]tagResponse, len(b.Tags))
	for i, t := range b.Tags {
		tags[i] = tagResponse{ID: t.ID.String(), Name: t.Name, Color: t.Color}
	}
	return bookmarkResponse{
		ID:          b.ID.String(),
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		FaviconURL:  b.FaviconURL,
		Priority:    string(b.Priority),
		Status:      string(b.Status),
		Tags:        tags,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		ReviewedAt:  b.ReviewedAt,
	}
}

func toBookmarkResponses(bs []*domain.Bookmark) []bookmarkResponse {
	out := make([]bookmarkResponse, len(bs))
	for i, b := range bs {
		out[i] = toBookmarkResponse(b)
	}
	return out
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Create handles POST /api/bookmarks.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookmarkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := h.svc.Create(r.Context(), bookmark.CreateInput{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		FaviconURL:  req.FaviconURL,
		Priority:    domain.Priority(req.Priority),
		Tags:        req.Tags,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

// Get handles GET /api/bookmarks/{id}.
func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// List handles GET /api/bookmarks.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := bookmark.ListInput{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
	}
	input.Limit, _ = strconv.Atoi(q.Get("limit"))
	input.Offset, _ = strconv.Atoi(q.Get("offset"))

	bs, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookmarks": toBookmarkResponses(bs),
		"count":     len(bs),
	})
}

// Update handles PUT /api/bookmarks/{id}.
func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateBookmarkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := bookmark.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if req.Tags != nil {
		input.Tags = *req.Tags
		input.TagsSet = true
	}

	b, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Delete handles DELETE /api/bookmarks/{id}.
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Bulk handles POST /api/bookmarks/bulk.
func (h *BookmarkHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ids must be valid uuids")
			return
		}
		ids = append(ids, id)
	}

	result, err := h.svc.Bulk(r.Context(), bookmark.BulkInput{
		Action: domain.BulkAction(req.Action),
		IDs:    ids,
		Value:  req.Value,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"action":   string(result.Action),
		"affected": result.Affected,
	})
}

// Import handles POST /api/bookmarks/import.
func (h *BookmarkHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items := make([]bookmark.ImportItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = bookmark.ImportItem{
			URL:         it.URL,
			Title:       it.Title,
			Description: it.Description,
			Folder:      it.Folder,
			Tags:        it.Tags,
		}
	}

	result, err := h.svc.Import(r.Context(), bookmark.ImportInput{Items: items})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	errs := make([]map[string]any, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = map[string]any{"index": e.Index, "url": e.URL, "reason": e.Reason}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"errors":   errs,
	})
}

// Stats handles GET /api/stats.
func (h *BookmarkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	topTags := make([]map[string]any, len(stats.TopTags))
	for i, t := range stats.TopTags {
		topTags[i] = map[string]any{"name": t.Name, "color": t.Color, "count": t.Count}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":       stats.Total,
		"by_status":   stats.ByStatus,
		"by_priority": stats.ByPriority,
		"tag_count":   stats.TagCount,
		"recent":      toBookmarkResponses(stats.Recent),
		"top_tags":    topTags,
	})
}

// pathID parses the {id} chi URL parameter.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
