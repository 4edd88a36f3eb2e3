package enrich

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *Extractor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewExtractor(logger, 2*time.Second, "linkmark-test/1.0")
}

func TestExtractor_Extract(t *testing.T) {
	const page = `<!DOCTYPE html>
<html>
<head>
	<title>My Page | Site</title>
	<meta name="description" content="plain description">
	<meta property="og:description" content="og description">
	<meta property="og:image" content="https://example.org/img.png">
</head>
<body>hello</body>
</html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "linkmark-test/1.0", r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	meta := newTestExtractor().Extract(context.Background(), srv.URL)

	require.False(t, meta.Degraded)
	assert.Equal(t, "My Page | Site", meta.Title)
	assert.Equal(t, "og description", meta.Description)
	assert.Equal(t, "https://example.org/img.png", meta.Image)
}

func TestExtractor_PlainDescriptionFallback(t *testing.T) {
	const page = `<html><head>
<title>T</title>
<meta name="description" content="plain only">
</head></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	meta := newTestExtractor().Extract(context.Background(), srv.URL)
	assert.Equal(t, "plain only", meta.Description)
}

func TestExtractor_NonSuccessStatusDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	meta := newTestExtractor().Extract(context.Background(), srv.URL)

	assert.True(t, meta.Degraded)
	assert.Equal(t, meta.Domain, meta.Title)
}

func TestExtractor_UnreachableHostDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	meta := newTestExtractor().Extract(context.Background(), srv.URL)

	assert.True(t, meta.Degraded)
	assert.NotEmpty(t, meta.Title)
}

func TestExtractor_MissingTitleKeepsDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><head></head><body></body></html>`)
	}))
	defer srv.Close()

	meta := newTestExtractor().Extract(context.Background(), srv.URL)

	assert.False(t, meta.Degraded)
	assert.Equal(t, meta.Domain, meta.Title)
}

func TestExtractor_OversizedBodyIsBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html><head><title>Big Page</title></head><body>")
		// Stream far more than the read cap; only the first chunk may
		// ever be consumed.
		filler := strings.Repeat("x", 64*1024)
		for i := 0; i < 64; i++ {
			if _, err := io.WriteString(w, filler); err != nil {
				return
			}
		}
		_, _ = io.WriteString(w, "</body></html>")
	}))
	defer srv.Close()

	meta := newTestExtractor().Extract(context.Background(), srv.URL)

	require.False(t, meta.Degraded)
	assert.Equal(t, "Big Page", meta.Title)
}
