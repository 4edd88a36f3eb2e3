package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row and returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Name:      "Test User " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedBookmark creates a TODO bookmark with a unique URL for the given
// user and returns the filled domain.Bookmark.
func SeedBookmark(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Bookmark {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	description := "Seeded bookmark " + suffix
	favicon := "https://www.google.com/s2/favicons?domain=example.com&sz=32"

	b := domain.Bookmark{
		ID:          uuid.New(),
		UserID:      userID,
		URL:         "https://example.com/articles/" + suffix,
		Title:       "Seed Title " + suffix,
		Description: &description,
		FaviconURL:  &favicon,
		Priority:    domain.PriorityMedium,
		Status:      domain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO bookmarks (id, user_id, url, title, description, favicon_url, priority, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.UserID, b.URL, b.Title, b.Description, b.FaviconURL, string(b.Priority), string(b.Status), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBookmark insert bookmark: %v", err)
	}

	return b
}

// SeedTag creates a tag with the given name for the user and returns
// the filled domain.Tag.
func SeedTag(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, name string) domain.Tag {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag := domain.Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      domain.NormalizeTagName(name),
		Color:     domain.RandomTagColor(),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tags (id, user_id, name, color, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tag.ID, tag.UserID, tag.Name, tag.Color, tag.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTag insert tag: %v", err)
	}

	return tag
}

// SeedBookmarkWithTags creates a bookmark plus linked tags with the
// given names. The returned bookmark has Tags populated.
func SeedBookmarkWithTags(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, tagNames ...string) domain.Bookmark {
	t.Helper()
	ctx := context.Background()

	b := SeedBookmark(t, pool, userID)
	for _, name := range tagNames {
		tag := SeedTag(t, pool, userID, name)

		_, err := pool.Exec(ctx,
			`INSERT INTO bookmark_tags (bookmark_id, tag_id) VALUES ($1, $2)`,
			b.ID, tag.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedBookmarkWithTags link tag %q: %v", name, err)
		}
		b.Tags = append(b.Tags, tag)
	}

	return b
}
