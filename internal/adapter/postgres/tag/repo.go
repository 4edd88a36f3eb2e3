// Package tag implements the tag repository using PostgreSQL, including
// the bookmark_tags M2M link table.
package tag

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkuzmenko/linkmark/internal/adapter/postgres"
	"github.com/vkuzmenko/linkmark/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const tagColumns = `id, user_id, name, color, created_at`

// The DO UPDATE arm is a no-op write that makes RETURNING yield the
// existing row instead of nothing on conflict.
const upsertSQL = `
INSERT INTO tags (id, user_id, name, color, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
RETURNING ` + tagColumns

const getByNameSQL = `
SELECT ` + tagColumns + `
FROM tags
WHERE user_id = $1 AND name = $2`

const listByUserSQL = `
SELECT ` + tagColumns + `
FROM tags
WHERE user_id = $1
ORDER BY name`

const topUsedSQL = `
SELECT t.name, t.color, count(bt.bookmark_id) AS uses
FROM tags t
JOIN bookmark_tags bt ON bt.tag_id = t.id
WHERE t.user_id = $1
GROUP BY t.id, t.name, t.color
ORDER BY uses DESC, t.name
LIMIT $2`

const deleteSQL = `
DELETE FROM tags
WHERE id = $1 AND user_id = $2`

const linkSQL = `
INSERT INTO bookmark_tags (bookmark_id, tag_id)
VALUES ($1, $2)
ON CONFLICT (bookmark_id, tag_id) DO NOTHING`

const unlinkSQL = `
DELETE FROM bookmark_tags
WHERE bookmark_id = $1 AND tag_id = $2`

const unlinkAllSQL = `
DELETE FROM bookmark_tags
WHERE bookmark_id = $1`

// ---------------------------------------------------------------------------
// Tag operations
// ---------------------------------------------------------------------------

// Upsert finds or creates the user's tag with the given (normalized)
// name. A fresh row gets the provided color; an existing row keeps its
// color. The returned tag is the row actually in the database.
func (r *Repo) Upsert(ctx context.Context, userID uuid.UUID, name, color string) (*domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTag(q.QueryRow(ctx, upsertSQL,
		uuid.New(), userID, domain.NormalizeTagName(name), color, nowUTC(),
	))
	if err != nil {
		return nil, postgres.MapError(err, "tag", name)
	}

	return t, nil
}

// GetByName returns the user's tag by normalized name.
// Returns domain.ErrNotFound when it does not exist.
func (r *Repo) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTag(q.QueryRow(ctx, getByNameSQL, userID, domain.NormalizeTagName(name)))
	if err != nil {
		return nil, postgres.MapError(err, "tag", name)
	}

	return t, nil
}

// ListByUser returns all of the user's tags ordered by name.
// Returns an empty slice (not nil) when the user has no tags.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

// TopUsed returns the user's most-attached tags with their usage
// counts, most used first. Tags with no bookmarks are not included.
func (r *Repo) TopUsed(ctx context.Context, userID uuid.UUID, limit int) ([]domain.TagUsage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, topUsedSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("top used tags: %w", err)
	}
	defer rows.Close()

	usages := make([]domain.TagUsage, 0)
	for rows.Next() {
		var u domain.TagUsage
		if err := rows.Scan(&u.Name, &u.Color, &u.Count); err != nil {
			return nil, fmt.Errorf("scan tag usage: %w", err)
		}
		usages = append(usages, u)
	}

	return usages, rows.Err()
}

// Delete removes the user's tag. Links in bookmark_tags go with it via
// ON DELETE CASCADE.
// Returns domain.ErrNotFound if the tag does not exist or belongs to
// another user.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "tag", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Link table operations
// ---------------------------------------------------------------------------

// Link attaches a tag to a bookmark. Linking twice is a no-op.
func (r *Repo) Link(ctx context.Context, bookmarkID, tagID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, linkSQL, bookmarkID, tagID); err != nil {
		return postgres.MapError(err, "bookmark_tag", bookmarkID.String())
	}

	return nil
}

// Unlink detaches a tag from a bookmark. Unlinking an absent pair is a
// no-op.
func (r *Repo) Unlink(ctx context.Context, bookmarkID, tagID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, unlinkSQL, bookmarkID, tagID); err != nil {
		return postgres.MapError(err, "bookmark_tag", bookmarkID.String())
	}

	return nil
}

// ReplaceBookmarkTags removes all of the bookmark's tag links and
// recreates them for tagIDs. Run it inside a transaction so readers
// never observe the bookmark with no tags mid-replace.
func (r *Repo) ReplaceBookmarkTags(ctx context.Context, bookmarkID uuid.UUID, tagIDs []uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, unlinkAllSQL, bookmarkID); err != nil {
		return postgres.MapError(err, "bookmark_tag", bookmarkID.String())
	}
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(linkSQL, bookmarkID, tagID)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range tagIDs {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "bookmark_tag", bookmarkID.String())
		}
	}

	return results.Close()
}

// LinkBulk attaches a tag to every bookmark in ids that belongs to the
// user, skipping pairs that already exist. Returns the number of
// bookmarks matched, counting ones that already carried the tag.
func (r *Repo) LinkBulk(ctx context.Context, userID uuid.UUID, bookmarkIDs []uuid.UUID, tagID uuid.UUID) (int64, error) {
	if len(bookmarkIDs) == 0 {
		return 0, nil
	}

	// Ownership check happens in the SELECT: links are only created for
	// the user's own bookmarks, and the count reflects those rows.
	sql, args, err := psql.Select("id").
		From("bookmarks").
		Where(squirrel.Eq{"user_id": userID, "id": bookmarkIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk link select: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk link select: %w", err)
	}

	var owned []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan bulk link id: %w", err)
		}
		owned = append(owned, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("bulk link select: %w", err)
	}
	if len(owned) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, bookmarkID := range owned {
		batch.Queue(linkSQL, bookmarkID, tagID)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range owned {
		if _, err := results.Exec(); err != nil {
			return 0, postgres.MapError(err, "bookmark_tag", tagID.String())
		}
	}
	if err := results.Close(); err != nil {
		return 0, err
	}

	return int64(len(owned)), nil
}

// UnlinkBulk detaches a tag from every bookmark in ids that belongs to
// the user. Returns the number of links actually removed.
func (r *Repo) UnlinkBulk(ctx context.Context, userID uuid.UUID, bookmarkIDs []uuid.UUID, tagID uuid.UUID) (int64, error) {
	if len(bookmarkIDs) == 0 {
		return 0, nil
	}

	sql, args, err := psql.Delete("bookmark_tags").
		Where(squirrel.Eq{"tag_id": tagID}).
		Where(squirrel.Expr(
			"bookmark_id IN (SELECT id FROM bookmarks WHERE user_id = ? AND id = ANY(?::uuid[]))",
			userID, bookmarkIDs,
		)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk unlink: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk unlink: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func nowUTC() time.Time {
	return time.Now().UTC()
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
