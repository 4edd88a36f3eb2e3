package webhook

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vkuzmenko/linkmark/internal/config"
	"github.com/vkuzmenko/linkmark/internal/domain"
)

// WhatsAppHandler processes WhatsApp webhook messages. Unlike Telegram
// there is no outbound send API wired here: the reply rides back in the
// webhook response for the provider to deliver.
type WhatsAppHandler struct {
	ingest      ingestService
	verifyToken string
	todoURL     string
	log         *slog.Logger
}

// NewWhatsAppHandler creates a WhatsAppHandler.
func NewWhatsAppHandler(ingestSvc ingestService, cfg config.WhatsAppConfig, todoURL string, logger *slog.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{
		ingest:      ingestSvc,
		verifyToken: cfg.VerifyToken,
		todoURL:     todoURL,
		log:         logger.With("handler", "whatsapp"),
	}
}

// whatsappMessage is the provider-independent shape after parsing.
type whatsappMessage struct {
	From string
	Body string
}

// Verify handles GET /api/webhooks/whatsapp, the WhatsApp Business API
// subscription handshake: echo hub.challenge when the verify token
// matches.
func (h *WhatsAppHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && h.verifyToken != "" && q.Get("hub.verify_token") == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(q.Get("hub.challenge"))) //nolint:errcheck
		return
	}

	writeJSON(w, http.StatusForbidden, map[string]string{"error": "verification failed"})
}

// Handle processes POST /api/webhooks/whatsapp.
func (h *WhatsAppHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid payload")
		return
	}

	msg, ok := parseWhatsAppMessage(payload)
	if !ok {
		writeStatus(w, http.StatusOK, "no_message")
		return
	}

	outcomes, err := h.ingest.CreateFromText(r.Context(), msg.Body, "", domain.SourceWhatsApp)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondWithReply(w, "no_urls", msg.From, helpMessage(), 0)
			return
		}
		h.log.ErrorContext(r.Context(), "webhook processing failed",
			slog.String("error", err.Error()))
		h.respondWithReply(w, "failed", msg.From, apologyMessage, 0)
		return
	}

	h.respondWithReply(w, "processed", msg.From, formatResults(outcomes, h.todoURL), len(outcomes))
}

func (h *WhatsAppHandler) respondWithReply(w http.ResponseWriter, status, to, message string, processed int) {
	body := map[string]any{
		"status": status,
		"reply": map[string]string{
			"to":      to,
			"message": message,
		},
	}
	if processed > 0 {
		body["processed_urls"] = processed
	}
	writeJSON(w, http.StatusOK, body)
}

// parseWhatsAppMessage accepts the WhatsApp Business API envelope and
// two flat provider formats.
func parseWhatsAppMessage(payload map[string]any) (whatsappMessage, bool) {
	// Business API: entry[0].changes[0].value.messages[0].
	if msg, ok := digBusinessMessage(payload); ok {
		return msg, true
	}

	from, _ := payload["from"].(string)
	if from == "" {
		return whatsappMessage{}, false
	}

	// Flat bot-relay format: {from, message}.
	if body, ok := payload["message"].(string); ok && body != "" {
		return whatsappMessage{From: from, Body: body}, true
	}
	// Generic format: {from, body}.
	if body, ok := payload["body"].(string); ok && body != "" {
		return whatsappMessage{From: from, Body: body}, true
	}

	return whatsappMessage{}, false
}

func digBusinessMessage(payload map[string]any) (whatsappMessage, bool) {
	entries, _ := payload["entry"].([]any)
	if len(entries) == 0 {
		return whatsappMessage{}, false
	}
	entry, _ := entries[0].(map[string]any)
	changes, _ := entry["changes"].([]any)
	if len(changes) == 0 {
		return whatsappMessage{}, false
	}
	change, _ := changes[0].(map[string]any)
	value, _ := change["value"].(map[string]any)
	messages, _ := value["messages"].([]any)
	if len(messages) == 0 {
		return whatsappMessage{}, false
	}
	msg, _ := messages[0].(map[string]any)

	from, _ := msg["from"].(string)
	var body string
	if text, ok := msg["text"].(map[string]any); ok {
		body, _ = text["body"].(string)
	}
	if body == "" {
		body, _ = msg["body"].(string)
	}
	if from == "" || body == "" {
		return whatsappMessage{}, false
	}

	return whatsappMessage{From: from, Body: body}, true
}
