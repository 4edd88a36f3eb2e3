// Package telegram implements the outbound Telegram Bot API client used
// to reply to chat messages.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Telegram rejects messages longer than 4096 characters.
const maxMessageLen = 4096

// Sender posts bot replies via the Telegram sendMessage API.
type Sender struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewSender creates a Sender for the given bot token.
func NewSender(token string, logger *slog.Logger) *Sender {
	return NewSenderWithURL(defaultBaseURL, token, logger)
}

// NewSenderWithURL creates a Sender with a custom API base URL (for testing).
func NewSenderWithURL(baseURL, token string, logger *slog.Logger) *Sender {
	return &Sender{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "telegram"),
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage sends text to the chat. Messages over the Telegram length
// limit are truncated. A 5xx or network failure is retried once.
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if s.token == "" {
		return fmt.Errorf("telegram: bot token is not configured")
	}

	if len(text) > maxMessageLen {
		text = text[:maxMessageLen]
	}

	form := url.Values{}
	form.Set("chat_id", fmt.Sprintf("%d", chatID))
	form.Set("text", text)
	payload := form.Encode()

	reqURL := s.baseURL + "/bot" + s.token + "/sendMessage"

	resp, err := s.doWithRetry(ctx, reqURL, payload, chatID)
	if err != nil {
		s.log.ErrorContext(ctx, "telegram send failed",
			slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
		return fmt.Errorf("telegram: send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return fmt.Errorf("telegram: decode response (status %d): %w", resp.StatusCode, err)
	}
	if !api.OK {
		return fmt.Errorf("telegram: api error (status %d): %s", resp.StatusCode, api.Description)
	}

	s.log.DebugContext(ctx, "telegram message sent", slog.Int64("chat_id", chatID))
	return nil
}

// doWithRetry executes the POST with a single retry on 5xx or network
// errors. The request is rebuilt per attempt because its body is
// consumed on send.
func (s *Sender) doWithRetry(ctx context.Context, reqURL, payload string, chatID int64) (*http.Response, error) {
	resp, err := s.post(ctx, reqURL, payload)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	s.log.WarnContext(ctx, "telegram retry", slog.Int64("chat_id", chatID), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return s.post(ctx, reqURL, payload)
}

func (s *Sender) post(ctx context.Context, reqURL, payload string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return s.httpClient.Do(req)
}
