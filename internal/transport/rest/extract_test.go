package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/internal/service/ingest"
)

type ingestServiceMock struct {
	CreateFromURLFunc  func(ctx context.Context, rawURL, userMessage, email string, source domain.Source) (*ingest.Result, error)
	CreateFromTextFunc func(ctx context.Context, text, email string, source domain.Source) ([]ingest.URLOutcome, error)
}

func (m *ingestServiceMock) CreateFromURL(ctx context.Context, rawURL, userMessage, email string, source domain.Source) (*ingest.Result, error) {
	return m.CreateFromURLFunc(ctx, rawURL, userMessage, email, source)
}

func (m *ingestServiceMock) CreateFromText(ctx context.Context, text, email string, source domain.Source) ([]ingest.URLOutcome, error) {
	return m.CreateFromTextFunc(ctx, text, email, source)
}

func TestExtractHandler_URL(t *testing.T) {
	svc := &ingestServiceMock{
		CreateFromURLFunc: func(_ context.Context, rawURL, userMessage, email string, source domain.Source) (*ingest.Result, error) {
			if rawURL != "https://go.dev/blog" || userMessage != "worth a read" {
				t.Errorf("unexpected args: url=%q message=%q", rawURL, userMessage)
			}
			if email != "user@example.com" || source != domain.SourceManual {
				t.Errorf("unexpected identity args: email=%q source=%q", email, source)
			}
			return &ingest.Result{Bookmark: sampleBookmark(), Degraded: true}, nil
		},
	}
	h := NewExtractHandler(svc, testLogger())

	body := `{"url":"https://go.dev/blog","message":"worth a read","email":"user@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Extract(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp extractResultResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Saved || resp.Bookmark == nil || !resp.Degraded {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestExtractHandler_Text(t *testing.T) {
	svc := &ingestServiceMock{
		CreateFromTextFunc: func(_ context.Context, text, _ string, _ domain.Source) ([]ingest.URLOutcome, error) {
			if !strings.Contains(text, "https://go.dev") {
				t.Errorf("unexpected text: %q", text)
			}
			return []ingest.URLOutcome{
				{URL: "https://go.dev", Result: &ingest.Result{Bookmark: sampleBookmark()}},
				{URL: "https://broken.example.com", Err: errors.New("fetch failed")},
			}, nil
		},
	}
	h := NewExtractHandler(svc, testLogger())

	body := `{"text":"check https://go.dev and https://broken.example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Extract(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Results []extractResultResponse `json:"results"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if !resp.Results[0].Saved || resp.Results[0].Bookmark == nil {
		t.Errorf("expected first result saved: %+v", resp.Results[0])
	}
	if resp.Results[1].Saved || resp.Results[1].Error == "" {
		t.Errorf("expected second result failed: %+v", resp.Results[1])
	}
}

func TestExtractHandler_MissingInput(t *testing.T) {
	h := NewExtractHandler(&ingestServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Extract(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestExtractHandler_InvalidURL(t *testing.T) {
	svc := &ingestServiceMock{
		CreateFromURLFunc: func(_ context.Context, _, _, _ string, _ domain.Source) (*ingest.Result, error) {
			return nil, domain.NewValidationError("url", "url must be absolute http(s)")
		},
	}
	h := NewExtractHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(`{"url":"ftp://x"}`))
	w := httptest.NewRecorder()
	h.Extract(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
