package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/pkg/ctxutil"
)

// ImportItem is one bookmark in an import payload. Folder, when set, is
// merged into the tag list.
type ImportItem struct {
	URL         string
	Title       string
	Description *string
	Folder      string
	Tags        []string
}

// ImportInput holds an import payload.
type ImportInput struct {
	Items []ImportItem
}

// Validate checks the payload size; per-item problems are reported in
// the result, not here.
func (i *ImportInput) Validate(maxItems int) error {
	var errs []domain.FieldError

	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "required"})
	} else if len(i.Items) > maxItems {
		errs = append(errs, domain.FieldError{Field: "items", Message: fmt.Sprintf("too many (max %d)", maxItems)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ImportError describes why one item was skipped or failed.
type ImportError struct {
	Index  int
	URL    string
	Reason string
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// Import creates bookmarks from an export payload in per-chunk
// transactions. Items with invalid URLs, duplicates within the payload,
// and URLs the user already bookmarked are skipped; one bad item never
// aborts the rest.
func (s *Service) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.ImportMaxItems); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	seen := make(map[string]bool)

	chunkSize := s.cfg.ImportChunkSize
	if chunkSize <= 0 {
		chunkSize = 50
	}

	for chunkStart := 0; chunkStart < len(input.Items); chunkStart += chunkSize {
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > len(input.Items) {
			chunkEnd = len(input.Items)
		}
		chunk := input.Items[chunkStart:chunkEnd]

		// Per-chunk counters so a failed transaction reverts cleanly.
		var chunkImported, chunkSkipped int
		var chunkErrors []ImportError
		var chunkSeenURLs []string

		txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			for i, item := range chunk {
				index := chunkStart + i

				if !domain.ValidateAbsoluteURL(item.URL) {
					chunkErrors = append(chunkErrors, ImportError{
						Index:  index,
						URL:    item.URL,
						Reason: "invalid url",
					})
					chunkSkipped++
					continue
				}

				// Deduplicate within the payload.
				if seen[item.URL] {
					chunkErrors = append(chunkErrors, ImportError{
						Index:  index,
						URL:    item.URL,
						Reason: "duplicate within import",
					})
					chunkSkipped++
					continue
				}

				// Skip URLs the user already bookmarked.
				_, getErr := s.bookmarks.GetByURL(txCtx, userID, item.URL)
				if getErr == nil {
					chunkErrors = append(chunkErrors, ImportError{
						Index:  index,
						URL:    item.URL,
						Reason: "bookmark already exists",
					})
					chunkSkipped++
					seen[item.URL] = true
					chunkSeenURLs = append(chunkSeenURLs, item.URL)
					continue
				}
				if !errors.Is(getErr, domain.ErrNotFound) {
					return fmt.Errorf("check duplicate: %w", getErr)
				}

				seen[item.URL] = true
				chunkSeenURLs = append(chunkSeenURLs, item.URL)

				if createErr := s.importItem(txCtx, userID, item); createErr != nil {
					return fmt.Errorf("import item %d: %w", index, createErr)
				}
				chunkImported++
			}
			return nil
		})

		if txErr != nil {
			// The whole chunk rolled back: unmark its URLs and record
			// the failure against every item in it.
			for _, url := range chunkSeenURLs {
				delete(seen, url)
			}
			s.log.ErrorContext(ctx, "import chunk failed",
				slog.String("user_id", userID.String()),
				slog.Int("chunk_start", chunkStart),
				slog.String("error", txErr.Error()))
			for i, item := range chunk {
				result.Errors = append(result.Errors, ImportError{
					Index:  chunkStart + i,
					URL:    item.URL,
					Reason: "chunk transaction failed",
				})
			}
			result.Skipped += len(chunk)
			continue
		}

		result.Imported += chunkImported
		result.Skipped += chunkSkipped
		result.Errors = append(result.Errors, chunkErrors...)
	}

	s.log.InfoContext(ctx, "import finished",
		slog.String("user_id", userID.String()),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))

	return result, nil
}

// importItem builds and persists one imported bookmark with its tags.
func (s *Service) importItem(ctx context.Context, userID uuid.UUID, item ImportItem) error {
	dom := domain.ExtractDomain(item.URL)

	title := item.Title
	if title == "" {
		title = "Content from " + dom
	}
	if runes := []rune(title); len(runes) > s.cfg.MaxTitleLen {
		title = string(runes[:s.cfg.MaxTitleLen])
	}

	tags := item.Tags
	if item.Folder != "" {
		tags = append(tags, item.Folder)
	}

	favicon := domain.FaviconURL(dom)
	now := time.Now().UTC()
	b := &domain.Bookmark{
		ID:          uuid.New(),
		UserID:      userID,
		URL:         item.URL,
		Title:       title,
		Description: item.Description,
		FaviconURL:  &favicon,
		Priority:    domain.PriorityMedium,
		Status:      domain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookmarks.Create(ctx, b); err != nil {
		return err
	}
	return s.attachTags(ctx, b, tags)
}
