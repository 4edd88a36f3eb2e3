package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vkuzmenko/linkmark/internal/auth"
	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

func newTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	return auth.NewTokenManager("test-secret-0123456789", "linkmark-test", time.Hour)
}

func TestAuth_ValidBearerToken(t *testing.T) {
	userID := uuid.New()
	tokens := newTokenManager(t)
	token, err := tokens.Generate(userID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := ctxutil.UserIDFromCtx(r.Context())
		if !ok {
			t.Error("expected userID in context")
			return
		}
		if got != userID {
			t.Errorf("expected userID %v, got %v", userID, got)
		}
		if ch := ctxutil.ChannelFromCtx(r.Context()); ch != string(domain.SourceManual) {
			t.Errorf("expected manual channel, got %q", ch)
		}
		w.WriteHeader(http.StatusOK)
	})

	wrapped := Auth(slog.Default(), auth.NewBearerAuthenticator(tokens))(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := newTokenManager(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	wrapped := Auth(slog.Default(), auth.NewBearerAuthenticator(tokens))(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_MissingCredentials(t *testing.T) {
	tokens := newTokenManager(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	wrapped := Auth(slog.Default(), auth.NewBearerAuthenticator(tokens))(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_FirstSuccessfulAuthenticatorWins(t *testing.T) {
	tokens := newTokenManager(t)
	apiKey := auth.NewAPIKeyAuthenticator("X-Api-Key", "sekret", domain.SourceTelegram)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
			t.Error("channel principal must not carry a user ID")
		}
		if ch := ctxutil.ChannelFromCtx(r.Context()); ch != string(domain.SourceTelegram) {
			t.Errorf("expected telegram channel, got %q", ch)
		}
		w.WriteHeader(http.StatusOK)
	})

	wrapped := Auth(slog.Default(), auth.NewBearerAuthenticator(tokens), apiKey)(handler)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Api-Key", "sekret")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAuth_UnconfiguredChannelRejects(t *testing.T) {
	apiKey := auth.NewAPIKeyAuthenticator("X-Api-Key", "", domain.SourceWhatsApp)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	wrapped := Auth(slog.Default(), apiKey)(handler)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Api-Key", "anything")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
