package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vkuzmenko/linkmark/internal/config"
	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/internal/service/bookmark"
	"github.com/vkuzmenko/linkmark/internal/service/ingest"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

const telegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// ingestService is the shared creation path every channel uses.
type ingestService interface {
	CreateFromURL(ctx context.Context, rawURL, userMessage, email string, source domain.Source) (*ingest.Result, error)
	CreateFromText(ctx context.Context, text, email string, source domain.Source) ([]ingest.URLOutcome, error)
	ResolveUser(ctx context.Context, email string) (*domain.User, error)
}

type statsService interface {
	GetStats(ctx context.Context) (*bookmark.Stats, error)
}

// replySender delivers outbound messages to a Telegram chat.
type replySender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// TelegramHandler processes Telegram webhook updates.
type TelegramHandler struct {
	ingest  ingestService
	stats   statsService
	sender  replySender
	secret  string
	todoURL string
	log     *slog.Logger
}

// NewTelegramHandler creates a TelegramHandler.
func NewTelegramHandler(
	ingestSvc ingestService,
	statsSvc statsService,
	sender replySender,
	cfg config.TelegramConfig,
	todoURL string,
	logger *slog.Logger,
) *TelegramHandler {
	return &TelegramHandler{
		ingest:  ingestSvc,
		stats:   statsSvc,
		sender:  sender,
		secret:  cfg.WebhookSecret,
		todoURL: todoURL,
		log:     logger.With("handler", "telegram"),
	}
}

// telegramUpdate is the subset of the Bot API update we act on.
type telegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID   int64  `json:"id"`
			Type string `json:"type"`
		} `json:"chat"`
	} `json:"message"`
}

// Handle processes POST /api/webhooks/telegram. Telegram retries on
// non-200 responses, so every processed update answers 200 and failures
// are reported to the user in chat instead.
func (h *TelegramHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.validSecret(r) {
		h.log.WarnContext(r.Context(), "webhook secret validation failed")
		writeStatus(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var update telegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		writeStatus(w, http.StatusOK, "no_message")
		return
	}
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if update.Message.Chat.Type != "private" {
		h.reply(r.Context(), chatID, "👋 Hi! Please send me a direct message to create bookmarks.")
		writeStatus(w, http.StatusOK, "group_message_ignored")
		return
	}

	if strings.HasPrefix(text, "/") {
		h.reply(r.Context(), chatID, h.handleCommand(r.Context(), text))
		writeStatus(w, http.StatusOK, "command_processed")
		return
	}

	outcomes, err := h.ingest.CreateFromText(r.Context(), text, "", domain.SourceTelegram)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) { // no URLs in the message
			h.reply(r.Context(), chatID, helpMessage())
			writeStatus(w, http.StatusOK, "no_urls")
			return
		}
		h.log.ErrorContext(r.Context(), "webhook processing failed",
			slog.String("error", err.Error()))
		h.reply(r.Context(), chatID, apologyMessage)
		writeStatus(w, http.StatusOK, "failed")
		return
	}

	h.reply(r.Context(), chatID, formatResults(outcomes, h.todoURL))
	writeJSONStatus(w, map[string]any{"status": "processed", "urls": len(outcomes)})
}

// handleCommand answers bot commands with a ready reply string.
func (h *TelegramHandler) handleCommand(ctx context.Context, text string) string {
	parts := strings.Fields(text)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/start", "/help":
		return helpMessage()

	case "/stats":
		return h.statsReply(ctx)

	case "/bookmark":
		return h.bookmarkCommand(ctx, args)

	default:
		return "❓ Unknown command. Send /help for available commands."
	}
}

func (h *TelegramHandler) statsReply(ctx context.Context) string {
	user, err := h.ingest.ResolveUser(ctx, "")
	if err != nil {
		h.log.ErrorContext(ctx, "stats identity resolution failed", slog.String("error", err.Error()))
		return "❌ Failed to fetch statistics. Please try again later."
	}

	stats, err := h.stats.GetStats(ctxutil.WithUserID(ctx, user.ID))
	if err != nil {
		h.log.ErrorContext(ctx, "stats fetch failed", slog.String("error", err.Error()))
		return "❌ Failed to fetch statistics. Please try again later."
	}

	return formatStats(stats)
}

func (h *TelegramHandler) bookmarkCommand(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "📚 Usage: /bookmark <url> [description]"
	}

	url := args[0]
	description := strings.Join(args[1:], " ")

	res, err := h.ingest.CreateFromURL(ctx, url, description, "", domain.SourceTelegram)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return "❌ Invalid URL format. Please provide a valid URL starting with http:// or https://"
		}
		h.log.ErrorContext(ctx, "bookmark command failed",
			slog.String("url", url), slog.String("error", err.Error()))
		return "❌ Failed to save the bookmark. Please try again later."
	}

	return formatResults([]ingest.URLOutcome{{URL: url, Result: res}}, h.todoURL)
}

// validSecret checks the Bot API secret token header. An empty
// configured secret rejects everything.
func (h *TelegramHandler) validSecret(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	got := r.Header.Get(telegramSecretHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

// reply sends a chat message, logging delivery failures only. The
// webhook response to Telegram itself never depends on it.
func (h *TelegramHandler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.sender.SendMessage(ctx, chatID, text); err != nil {
		h.log.ErrorContext(ctx, "telegram reply failed",
			slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	writeJSON(w, code, map[string]string{"status": status})
}

func writeJSONStatus(w http.ResponseWriter, v map[string]any) {
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
