package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

// Principal is the authenticated caller of a request. UserID is set for
// session-token callers; for channel callers (bots posting on behalf of
// a chat user) it is uuid.Nil and the owning user is resolved later
// from the request payload.
type Principal struct {
	UserID  uuid.UUID
	Channel domain.Source
}

// Authenticator validates the credentials carried by an incoming
// request. Implementations return domain.ErrUnauthorized (wrapped) when
// the credentials are missing or wrong.
type Authenticator interface {
	Authenticate(r *http.Request) (Principal, error)
}

// BearerAuthenticator authenticates interactive API clients via a JWT
// in the Authorization header.
type BearerAuthenticator struct {
	tokens *TokenManager
}

func NewBearerAuthenticator(tokens *TokenManager) *BearerAuthenticator {
	return &BearerAuthenticator{tokens: tokens}
}

func (a *BearerAuthenticator) Authenticate(r *http.Request) (Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Principal{}, fmt.Errorf("%w: missing authorization header", domain.ErrUnauthorized)
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return Principal{}, fmt.Errorf("%w: authorization header is not a bearer token", domain.ErrUnauthorized)
	}

	userID, err := a.tokens.Validate(token)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, err)
	}

	return Principal{UserID: userID, Channel: domain.SourceManual}, nil
}

// APIKeyAuthenticator authenticates a chat channel integration via a
// shared key in a request header.
type APIKeyAuthenticator struct {
	header  string
	key     string
	channel domain.Source
}

// NewAPIKeyAuthenticator builds an authenticator for one channel. An
// empty configured key disables the channel: every request is rejected.
func NewAPIKeyAuthenticator(header, key string, channel domain.Source) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{header: header, key: key, channel: channel}
}

func (a *APIKeyAuthenticator) Authenticate(r *http.Request) (Principal, error) {
	if a.key == "" {
		return Principal{}, fmt.Errorf("%w: channel %s is not configured", domain.ErrUnauthorized, a.channel)
	}

	got := r.Header.Get(a.header)
	if got == "" {
		return Principal{}, fmt.Errorf("%w: missing %s header", domain.ErrUnauthorized, a.header)
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(a.key)) != 1 {
		return Principal{}, fmt.Errorf("%w: invalid api key", domain.ErrUnauthorized)
	}

	return Principal{Channel: a.channel}, nil
}
