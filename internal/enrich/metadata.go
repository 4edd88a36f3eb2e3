// Package enrich implements the heuristic enrichment pipeline: URL
// metadata extraction, tagging, priority classification, and
// title/description enhancement. Everything in this package is
// best-effort: extraction and enrichment degrade to defaults and never
// fail the surrounding bookmark creation.
package enrich

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

// maxBodyBytes caps how much of a page is read for parsing. Everything
// this extractor wants lives in <head>, well inside the first megabyte.
const maxBodyBytes = 1 << 20

// Metadata is the result of scraping a URL. Degraded is true when the
// fetch failed and the fields were synthesized from the URL alone.
type Metadata struct {
	URL         string
	Title       string
	Description string
	Image       string
	Domain      string
	Degraded    bool
	FetchedAt   time.Time
}

// Extractor fetches a URL and parses minimal HTML for title,
// description, and og:image.
type Extractor struct {
	client    *http.Client
	userAgent string
	log       *slog.Logger
}

// NewExtractor creates an Extractor with a bounded fetch timeout and an
// identifying User-Agent.
func NewExtractor(logger *slog.Logger, timeout time.Duration, userAgent string) *Extractor {
	return &Extractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		log:       logger.With("component", "extractor"),
	}
}

// Extract fetches the URL and returns its metadata. The URL must already
// be a syntactically valid absolute URL; validation is the caller's
// responsibility. Fetch and parse failures are logged and degrade to
// fallback metadata, never an error.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Metadata {
	meta := fallbackMetadata(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		e.log.WarnContext(ctx, "metadata fetch: bad request", slog.String("url", rawURL), slog.String("error", err.Error()))
		return meta
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.WarnContext(ctx, "metadata fetch failed", slog.String("url", rawURL), slog.String("error", err.Error()))
		return meta
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.log.WarnContext(ctx, "metadata fetch: non-success status",
			slog.String("url", rawURL), slog.Int("status", resp.StatusCode))
		return meta
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		e.log.WarnContext(ctx, "metadata parse failed", slog.String("url", rawURL), slog.String("error", err.Error()))
		return meta
	}

	title, description, image := scanDocument(doc)
	if title != "" {
		meta.Title = title
	}
	meta.Description = description
	meta.Image = image
	meta.Degraded = false

	return meta
}

// fallbackMetadata synthesizes metadata from the URL alone.
func fallbackMetadata(rawURL string) Metadata {
	dom := domain.ExtractDomain(rawURL)
	return Metadata{
		URL:       rawURL,
		Title:     dom,
		Domain:    dom,
		Degraded:  true,
		FetchedAt: time.Now().UTC(),
	}
}

// scanDocument walks the parsed HTML once and collects, independently and
// best-effort, the <title> text, the meta description (og:description
// preferred over name="description"), and og:image.
func scanDocument(doc *html.Node) (title, description, image string) {
	var plainDesc, ogDesc string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var name, property, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "name":
						name = strings.ToLower(attr.Val)
					case "property":
						property = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				switch {
				case property == "og:description" && ogDesc == "":
					ogDesc = strings.TrimSpace(content)
				case name == "description" && plainDesc == "":
					plainDesc = strings.TrimSpace(content)
				case property == "og:image" && image == "":
					image = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	description = ogDesc
	if description == "" {
		description = plainDesc
	}
	return title, description, image
}
