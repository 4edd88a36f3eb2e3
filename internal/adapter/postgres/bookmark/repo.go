// Package bookmark implements the bookmark repository using PostgreSQL.
// Static queries are raw SQL consts; list filters and bulk updates are
// built dynamically with squirrel.
package bookmark

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

// Repo provides bookmark persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bookmark repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const bookmarkColumns = `id, user_id, url, title, description, favicon_url, priority, status, created_at, updated_at, reviewed_at`

const insertSQL = `
INSERT INTO bookmarks (id, user_id, url, title, description, favicon_url, priority, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getByIDSQL = `
SELECT ` + bookmarkColumns + `
FROM bookmarks
WHERE id = $1 AND user_id = $2`

const getByURLSQL = `
SELECT ` + bookmarkColumns + `
FROM bookmarks
WHERE user_id = $1 AND url = $2
ORDER BY created_at
LIMIT 1`

const updateSQL = `
UPDATE bookmarks
SET title = $3, description = $4, priority = $5, status = $6, reviewed_at = $7, updated_at = $8
WHERE id = $1 AND user_id = $2`

const deleteSQL = `
DELETE FROM bookmarks
WHERE id = $1 AND user_id = $2`

const purgeDiscardedSQL = `
DELETE FROM bookmarks
WHERE status = 'DISCARDED' AND updated_at < $1`

const tagsByBookmarkIDsSQL = `
SELECT bt.bookmark_id, t.id, t.user_id, t.name, t.color, t.created_at
FROM bookmark_tags bt
JOIN tags t ON bt.tag_id = t.id
WHERE bt.bookmark_id = ANY($1::uuid[])
ORDER BY bt.bookmark_id, t.name`

const statusCountsSQL = `
SELECT status, count(*)
FROM bookmarks
WHERE user_id = $1
GROUP BY status`

const priorityCountsSQL = `
SELECT priority, count(*)
FROM bookmarks
WHERE user_id = $1
GROUP BY priority`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new bookmark. Tags are not persisted here; link them
// through the tag repository.
func (r *Repo) Create(ctx context.Context, b *domain.Bookmark) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, insertSQL,
		b.ID, b.UserID, b.URL, b.Title, b.Description, b.FaviconURL,
		string(b.Priority), string(b.Status), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "bookmark", b.URL)
	}

	return nil
}

// Update writes all mutable columns of a bookmark.
// Returns domain.ErrNotFound if the bookmark does not exist or belongs
// to another user.
func (r *Repo) Update(ctx context.Context, b *domain.Bookmark) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateSQL,
		b.ID, b.UserID, b.Title, b.Description,
		string(b.Priority), string(b.Status), b.ReviewedAt, b.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "bookmark", b.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", b.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a bookmark. Linked bookmark_tags rows go with it via
// ON DELETE CASCADE.
// Returns domain.ErrNotFound if the bookmark does not exist or belongs
// to another user.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "bookmark", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Bulk operations
// ---------------------------------------------------------------------------

// UpdateStatusBulk sets the status on all of the user's bookmarks in
// ids, stamping reviewed_at when it is non-nil. Returns the number of
// rows actually updated; IDs that do not exist or belong to another
// user are silently skipped.
func (r *Repo) UpdateStatusBulk(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, status domain.BookmarkStatus, reviewedAt *time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	builder := psql.Update("bookmarks").
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"user_id": userID, "id": ids})
	if reviewedAt != nil {
		builder = builder.Set("reviewed_at", *reviewedAt)
	}

	return r.execBulk(ctx, builder, "update status")
}

// UpdatePriorityBulk sets the priority on all of the user's bookmarks
// in ids. Returns the number of rows actually updated.
func (r *Repo) UpdatePriorityBulk(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, priority domain.Priority) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	builder := psql.Update("bookmarks").
		Set("priority", string(priority)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"user_id": userID, "id": ids})

	return r.execBulk(ctx, builder, "update priority")
}

// DeleteBulk removes all of the user's bookmarks in ids and returns
// the number of rows deleted.
func (r *Repo) DeleteBulk(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql, args, err := psql.Delete("bookmarks").
		Where(squirrel.Eq{"user_id": userID, "id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk delete: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "bookmark", userID.String())
	}

	return tag.RowsAffected(), nil
}

// PurgeDiscarded removes discarded bookmarks across all users that were
// last touched before the threshold. Intended for the cleanup command,
// not the request path.
func (r *Repo) PurgeDiscarded(ctx context.Context, before time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, purgeDiscardedSQL, before)
	if err != nil {
		return 0, fmt.Errorf("purge discarded: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *Repo) execBulk(ctx context.Context, builder squirrel.UpdateBuilder, op string) (int64, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk %s: %w", op, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk %s: %w", op, err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a bookmark with its tags.
// Returns domain.ErrNotFound if the bookmark does not exist or belongs
// to another user.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Bookmark, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBookmark(q.QueryRow(ctx, getByIDSQL, id, userID))
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", id.String())
	}

	if err := r.attachTags(ctx, []*domain.Bookmark{b}); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByURL returns the user's earliest bookmark with the exact URL,
// used for duplicate detection on import.
// Returns domain.ErrNotFound when no such bookmark exists.
func (r *Repo) GetByURL(ctx context.Context, userID uuid.UUID, url string) (*domain.Bookmark, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBookmark(q.QueryRow(ctx, getByURLSQL, userID, url))
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", url)
	}

	return b, nil
}

// List returns the user's bookmarks matching the filter, newest first,
// with tags attached. Returns an empty slice (not nil) when nothing
// matches.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.BookmarkFilter) ([]*domain.Bookmark, error) {
	builder := psql.Select(
		"b.id", "b.user_id", "b.url", "b.title", "b.description", "b.favicon_url",
		"b.priority", "b.status", "b.created_at", "b.updated_at", "b.reviewed_at",
	).
		From("bookmarks b").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": string(*filter.Status)})
	}
	if filter.Priority != nil {
		builder = builder.Where(squirrel.Eq{"b.priority": string(*filter.Priority)})
	}
	if filter.Tag != "" {
		builder = builder.
			Join("bookmark_tags bt ON bt.bookmark_id = b.id").
			Join("tags t ON t.id = bt.tag_id").
			Where(squirrel.Eq{"t.name": domain.NormalizeTagName(filter.Tag)})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"b.title": pattern},
			squirrel.ILike{"b.description": pattern},
			squirrel.ILike{"b.url": pattern},
		})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]*domain.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	if err := r.attachTags(ctx, bookmarks); err != nil {
		return nil, err
	}

	return bookmarks, nil
}

// StatusCounts returns the number of the user's bookmarks per status.
func (r *Repo) StatusCounts(ctx context.Context, userID uuid.UUID) (map[domain.BookmarkStatus]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, statusCountsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.BookmarkStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.BookmarkStatus(status)] = n
	}

	return counts, rows.Err()
}

// PriorityCounts returns the number of the user's bookmarks per priority.
func (r *Repo) PriorityCounts(ctx context.Context, userID uuid.UUID) (map[domain.Priority]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, priorityCountsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("count by priority: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Priority]int)
	for rows.Next() {
		var priority string
		var n int
		if err := rows.Scan(&priority, &n); err != nil {
			return nil, fmt.Errorf("scan priority count: %w", err)
		}
		counts[domain.Priority(priority)] = n
	}

	return counts, rows.Err()
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func scanBookmark(row pgx.Row) (*domain.Bookmark, error) {
	var b domain.Bookmark
	var priority, status string

	err := row.Scan(
		&b.ID, &b.UserID, &b.URL, &b.Title, &b.Description, &b.FaviconURL,
		&priority, &status, &b.CreatedAt, &b.UpdatedAt, &b.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Priority = domain.Priority(priority)
	b.Status = domain.BookmarkStatus(status)
	return &b, nil
}

// attachTags loads the tags for all given bookmarks in one query and
// fills their Tags fields in place.
func (r *Repo) attachTags(ctx context.Context, bookmarks []*domain.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(bookmarks))
	byID := make(map[uuid.UUID]*domain.Bookmark, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, tagsByBookmarkIDsSQL, ids)
	if err != nil {
		return fmt.Errorf("load bookmark tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookmarkID uuid.UUID
		var t domain.Tag
		if err := rows.Scan(&bookmarkID, &t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan bookmark tag: %w", err)
		}
		if b, ok := byID[bookmarkID]; ok {
			b.Tags = append(b.Tags, t)
		}
	}

	return rows.Err()
}
