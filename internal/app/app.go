package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vkuzmenko/linkmark/internal/adapter/postgres"
	bookmarkrepo "github.com/vkuzmenko/linkmark/internal/adapter/postgres/bookmark"
	tagrepo "github.com/vkuzmenko/linkmark/internal/adapter/postgres/tag"
	userrepo "github.com/vkuzmenko/linkmark/internal/adapter/postgres/user"
	"github.com/vkuzmenko/linkmark/internal/adapter/telegram"
	"github.com/vkuzmenko/linkmark/internal/auth"
	"github.com/vkuzmenko/linkmark/internal/config"
	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/internal/enrich"
	bookmarksvc "github.com/vkuzmenko/linkmark/internal/service/bookmark"
	ingestsvc "github.com/vkuzmenko/linkmark/internal/service/ingest"
	tagsvc "github.com/vkuzmenko/linkmark/internal/service/tag"
	"github.com/vkuzmenko/linkmark/internal/transport/middleware"
	"github.com/vkuzmenko/linkmark/internal/transport/rest"
	"github.com/vkuzmenko/linkmark/internal/transport/webhook"
)

// Run is the application entry point. It loads configuration, wires the
// dependency graph, and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories and the shared transaction manager.
	bookmarks := bookmarkrepo.New(pool)
	tags := tagrepo.New(pool)
	users := userrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	// Enrichment pipeline.
	extractor := enrich.NewExtractor(logger, cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	enricher := enrich.NewEnricher(logger, extractor)

	// Services.
	bookmarkService := bookmarksvc.NewService(logger, bookmarks, tags, tx, cfg.Bookmarks)
	tagService := tagsvc.NewService(logger, tags)
	ingestService := ingestsvc.NewService(logger, enricher, bookmarkService, users, cfg.Bookmarks)

	// Outbound Telegram replies.
	sender := telegram.NewSender(cfg.Telegram.BotToken, logger)

	// Authentication. Sessions use bearer tokens; the assistant endpoint
	// additionally accepts per-channel shared keys.
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	bearer := auth.NewBearerAuthenticator(tokens)
	botKey := auth.NewAPIKeyAuthenticator("X-Api-Key", cfg.Auth.BotAPIKey, domain.SourceTelegram)
	whatsappKey := auth.NewAPIKeyAuthenticator("X-Api-Key", cfg.Auth.WhatsAppAPIKey, domain.SourceWhatsApp)

	sessionAuth := middleware.Auth(logger, bearer)
	frontDoorAuth := middleware.Auth(logger, bearer, botKey, whatsappKey)

	handlers := rest.Handlers{
		Bookmarks: rest.NewBookmarkHandler(bookmarkService, logger),
		Tags:      rest.NewTagHandler(tagService, logger),
		Extract:   rest.NewExtractHandler(ingestService, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Telegram:  webhook.NewTelegramHandler(ingestService, bookmarkService, sender, cfg.Telegram, cfg.Bookmarks.TodoURL, logger),
		WhatsApp:  webhook.NewWhatsAppHandler(ingestService, cfg.WhatsApp, cfg.Bookmarks.TodoURL, logger),
	}

	router := rest.NewRouter(logger, cfg.CORS, sessionAuth, frontDoorAuth, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
