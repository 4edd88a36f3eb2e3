package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

func TestBearerAuthenticator(t *testing.T) {
	tokens := NewTokenManager(testSecret, "linkmark", time.Hour)
	a := NewBearerAuthenticator(tokens)
	userID := uuid.New()

	token, err := tokens.Generate(userID)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/bookmarks", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		p, err := a.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.Equal(t, domain.SourceManual, p.Channel)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/bookmarks", nil)

		_, err := a.Authenticate(r)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("not a bearer token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/bookmarks", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		_, err := a.Authenticate(r)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("invalid token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/bookmarks", nil)
		r.Header.Set("Authorization", "Bearer garbage")

		_, err := a.Authenticate(r)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})
}

func TestAPIKeyAuthenticator(t *testing.T) {
	a := NewAPIKeyAuthenticator("X-API-Key", "channel-key-0123456789", domain.SourceTelegram)

	t.Run("valid key", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/webhooks/telegram", nil)
		r.Header.Set("X-API-Key", "channel-key-0123456789")

		p, err := a.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, p.UserID)
		assert.Equal(t, domain.SourceTelegram, p.Channel)
	})

	t.Run("wrong key", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/webhooks/telegram", nil)
		r.Header.Set("X-API-Key", "wrong")

		_, err := a.Authenticate(r)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("missing key", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/webhooks/telegram", nil)

		_, err := a.Authenticate(r)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("unconfigured channel rejects everything", func(t *testing.T) {
		disabled := NewAPIKeyAuthenticator("X-API-Key", "", domain.SourceWhatsApp)
		r := httptest.NewRequest("POST", "/webhooks/whatsapp", nil)
		r.Header.Set("X-API-Key", "")

		_, err := disabled.Authenticate(r)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})
}
