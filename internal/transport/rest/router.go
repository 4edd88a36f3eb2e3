package rest

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/vkuzmenko/linkmark/internal/config"
	"github.com/vkuzmenko/linkmark/internal/transport/middleware"
	"github.com/vkuzmenko/linkmark/internal/transport/webhook"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Bookmarks *BookmarkHandler
	Tags      *TagHandler
	Extract   *ExtractHandler
	Health    *HealthHandler
	Telegram  *webhook.TelegramHandler
	WhatsApp  *webhook.WhatsAppHandler
}

// NewRouter builds the HTTP routing table. sessionAuth guards the
// interactive API; frontDoorAuth additionally admits channel API keys
// on the assistant endpoint. Webhook endpoints carry their own
// provider-specific verification.
func NewRouter(
	logger *slog.Logger,
	corsCfg config.CORSConfig,
	sessionAuth middleware.Middleware,
	frontDoorAuth middleware.Middleware,
	h Handlers,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsCfg))

	r.Get("/health", h.Health.Health)
	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)

			r.Route("/bookmarks", func(r chi.Router) {
				r.Post("/", h.Bookmarks.Create)
				r.Get("/", h.Bookmarks.List)
				r.Post("/bulk", h.Bookmarks.Bulk)
				r.Post("/import", h.Bookmarks.Import)
				r.Get("/{id}", h.Bookmarks.Get)
				r.Put("/{id}", h.Bookmarks.Update)
				r.Delete("/{id}", h.Bookmarks.Delete)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", h.Tags.List)
				r.Post("/", h.Tags.Create)
				r.Delete("/{id}", h.Tags.Delete)
			})

			r.Get("/stats", h.Bookmarks.Stats)
		})

		r.Group(func(r chi.Router) {
			r.Use(frontDoorAuth)
			r.Post("/ai/extract-bookmark", h.Extract.Extract)
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/telegram", h.Telegram.Handle)
			r.Post("/whatsapp", h.WhatsApp.Handle)
			r.Get("/whatsapp", h.WhatsApp.Verify)
		})
	})

	return r
}
