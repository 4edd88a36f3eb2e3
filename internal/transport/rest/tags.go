package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

// tagService defines the minimal interface needed by TagHandler.
type tagService interface {
	List(ctx context.Context) ([]*domain.Tag, error)
	Create(ctx context.Context, name, color string) (*domain.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagHandler serves tag REST endpoints.
type TagHandler struct {
	svc tagService
	log *slog.Logger
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(svc tagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, log: logger.With("handler", "tags")}
}

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// List handles GET /api/tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]tagResponse, len(tags))
	for i, t := range tags {
		out[i] = tagResponse{ID: t.ID.String(), Name: t.Name, Color: t.Color}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": out})
}

// Create handles POST /api/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tag, err := h.svc.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tagResponse{ID: tag.ID.String(), Name: tag.Name, Color: tag.Color})
}

// Delete handles DELETE /api/tags/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
