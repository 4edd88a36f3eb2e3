package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkuzmenko/linkmark/internal/adapter/postgres/testhelper"
	"github.com/vkuzmenko/linkmark/internal/adapter/postgres/user"
	"github.com/vkuzmenko/linkmark/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*user.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return user.New(pool), pool
}

func newUser(email string) *domain.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      "Repo Test",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	u := newUser("create-get-" + uuid.NewString()[:8] + "@example.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}

	if got.Email != u.Email {
		t.Errorf("Email mismatch: got %q, want %q", got.Email, u.Email)
	}
	if got.Name != u.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, u.Name)
	}
}

func TestRepo_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	email := "dup-" + uuid.NewString()[:8] + "@example.com"
	if err := repo.Create(ctx, newUser(email)); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	err := repo.Create(ctx, newUser(email))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_GetByEmail_CaseInsensitive(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	email := "case-" + uuid.NewString()[:8] + "@example.com"
	u := newUser(email)
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByEmail(ctx, strings.ToUpper(email))
	if err != nil {
		t.Fatalf("GetByEmail: unexpected error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, u.ID)
	}
}

func TestRepo_GetByEmail_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByEmail(context.Background(), "missing-"+uuid.NewString()[:8]+"@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_First(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	// The shared container may already hold users from other tests, so
	// only assert that First returns the row with the smallest created_at.
	testhelper.SeedUser(t, pool)

	got, err := repo.First(ctx)
	if err != nil {
		t.Fatalf("First: unexpected error: %v", err)
	}

	var oldest time.Time
	if err := pool.QueryRow(ctx, `SELECT min(created_at) FROM users`).Scan(&oldest); err != nil {
		t.Fatalf("min created_at: %v", err)
	}
	if !got.CreatedAt.Equal(oldest) {
		t.Errorf("First returned created_at %s, want oldest %s", got.CreatedAt, oldest)
	}
}
