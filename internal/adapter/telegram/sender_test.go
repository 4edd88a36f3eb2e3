package telegram

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSender_SendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "42", r.PostFormValue("chat_id"))
		assert.Equal(t, "saved!", r.PostFormValue("text"))
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	s := NewSenderWithURL(srv.URL, "test-token", discardLogger())
	err := s.SendMessage(context.Background(), 42, "saved!")
	require.NoError(t, err)
}

func TestSender_SendMessage_Truncates(t *testing.T) {
	var gotLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotLen = len(r.PostFormValue("text"))
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	s := NewSenderWithURL(srv.URL, "test-token", discardLogger())
	err := s.SendMessage(context.Background(), 42, strings.Repeat("x", maxMessageLen+100))
	require.NoError(t, err)
	assert.Equal(t, maxMessageLen, gotLen)
}

func TestSender_SendMessage_RetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	s := NewSenderWithURL(srv.URL, "test-token", discardLogger())
	err := s.SendMessage(context.Background(), 42, "retry me")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSender_SendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"description":"chat not found"}`)
	}))
	defer srv.Close()

	s := NewSenderWithURL(srv.URL, "test-token", discardLogger())
	err := s.SendMessage(context.Background(), 42, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSender_SendMessage_NoToken(t *testing.T) {
	s := NewSenderWithURL("http://unused", "", discardLogger())
	err := s.SendMessage(context.Background(), 42, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
