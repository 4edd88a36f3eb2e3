package enrich

import (
	"context"
	"log/slog"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

// Enrichment is the combined output of the pipeline for a single URL.
// Degraded mirrors the extraction result: when true, the metadata was
// synthesized from the URL alone and the tags and priority come from
// the URL and user message only.
type Enrichment struct {
	Title       string
	Description string
	FaviconURL  string
	Tags        []string
	Priority    domain.Priority
	Degraded    bool
}

// Enricher runs the full pipeline: extraction, tagging, priority
// classification, and title/description enhancement.
type Enricher struct {
	extractor *Extractor
	log       *slog.Logger
}

func NewEnricher(logger *slog.Logger, extractor *Extractor) *Enricher {
	return &Enricher{
		extractor: extractor,
		log:       logger.With("component", "enricher"),
	}
}

// Enrich produces the enrichment for a URL. It never returns an error:
// a failed fetch yields a degraded result, and a panic anywhere in the
// heuristics falls back to minimal defaults.
func (e *Enricher) Enrich(ctx context.Context, rawURL, userMessage string, source domain.Source) (result Enrichment) {
	dom := domain.ExtractDomain(rawURL)

	defer func() {
		if r := recover(); r != nil {
			e.log.ErrorContext(ctx, "enrichment panic, using fallback",
				slog.String("url", rawURL), slog.Any("panic", r))
			result = fallbackEnrichment(dom, source)
		}
	}()

	meta := e.extractor.Extract(ctx, rawURL)

	return Enrichment{
		Title:       EnhanceTitle(meta.Title, meta.Domain),
		Description: ComposeDescription(userMessage, meta.Description, meta.Domain, source),
		FaviconURL:  domain.FaviconURL(meta.Domain),
		Tags:        SuggestTags(meta, userMessage),
		Priority:    ClassifyPriority(meta, userMessage),
		Degraded:    meta.Degraded,
	}
}

// fallbackEnrichment is the minimal result used when the heuristics
// themselves fail.
func fallbackEnrichment(dom string, source domain.Source) Enrichment {
	var tags []string
	if label := domain.BaseDomainLabel(dom); label != "" {
		tags = []string{label}
	}
	return Enrichment{
		Title:       "Content from " + dom,
		Description: ComposeDescription("", "", dom, source),
		FaviconURL:  domain.FaviconURL(dom),
		Tags:        tags,
		Priority:    domain.PriorityMedium,
		Degraded:    true,
	}
}
