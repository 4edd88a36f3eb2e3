package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

const (
	defaultUserEmail = "default@linkmark.local"
	defaultUserName  = "Default User"
)

// identityResolver maps an ingestion request to a user. Strategies run
// in order until one yields a user:
//
//  1. byEmail     — an explicit email in the request
//  2. byConfigID  — the configured default user id
//  3. firstUser   — the oldest existing user
//  4. createDefault — a freshly created default user
//
// Webhook channels carry no credentials, so everything past byEmail
// exists to keep single-user installs working with zero setup.
type identityResolver struct {
	log        *slog.Logger
	users      userRepo
	strategies []identityStrategy
}

type identityStrategy struct {
	name    string
	resolve func(ctx context.Context, email string) (*domain.User, error)
}

func newIdentityResolver(log *slog.Logger, users userRepo, defaultUserID string) *identityResolver {
	r := &identityResolver{log: log, users: users}
	r.strategies = []identityStrategy{
		{name: "email", resolve: r.byEmail},
		{name: "config_default", resolve: r.byConfigID(defaultUserID)},
		{name: "first_user", resolve: r.firstUser},
		{name: "create_default", resolve: r.createDefault},
	}
	return r
}

// Resolve returns the user an ingestion request acts for.
func (r *identityResolver) Resolve(ctx context.Context, email string) (*domain.User, error) {
	for _, s := range r.strategies {
		u, err := s.resolve(ctx, email)
		if err != nil {
			if errors.Is(err, errStrategySkipped) {
				continue
			}
			return nil, fmt.Errorf("resolve identity (%s): %w", s.name, err)
		}
		r.log.DebugContext(ctx, "identity resolved",
			slog.String("strategy", s.name),
			slog.String("user_id", u.ID.String()))
		return u, nil
	}
	return nil, errors.New("no identity strategy produced a user")
}

// errStrategySkipped moves resolution on to the next strategy.
var errStrategySkipped = errors.New("strategy skipped")

func (r *identityResolver) byEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, errStrategySkipped
	}
	u, err := r.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errStrategySkipped
	}
	return u, err
}

func (r *identityResolver) byConfigID(defaultUserID string) func(ctx context.Context, email string) (*domain.User, error) {
	return func(ctx context.Context, _ string) (*domain.User, error) {
		if defaultUserID == "" {
			return nil, errStrategySkipped
		}
		id, err := uuid.Parse(defaultUserID)
		if err != nil {
			r.log.WarnContext(ctx, "default user id is not a uuid, skipping",
				slog.String("default_user_id", defaultUserID))
			return nil, errStrategySkipped
		}
		u, err := r.users.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errStrategySkipped
		}
		return u, err
	}
}

func (r *identityResolver) firstUser(ctx context.Context, _ string) (*domain.User, error) {
	u, err := r.users.First(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errStrategySkipped
	}
	return u, err
}

func (r *identityResolver) createDefault(ctx context.Context, _ string) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.New(),
		Email:     defaultUserEmail,
		Name:      defaultUserName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.users.Create(ctx, u); err != nil {
		// Lost a race with a concurrent webhook; the row is there now.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return r.users.GetByEmail(ctx, defaultUserEmail)
		}
		return nil, err
	}
	r.log.InfoContext(ctx, "default user created", slog.String("user_id", u.ID.String()))
	return u, nil
}
