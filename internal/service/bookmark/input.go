package bookmark

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vkuzmenko/linkmark/internal/domain"
)

const (
	maxDescriptionLen = 5000
	maxTagNameLen     = 50
	maxTagsPerInput   = 20
	maxBulkIDs        = 500
)

// CreateInput holds the final field values for a new bookmark. Callers
// run enrichment first; this service only persists.
type CreateInput struct {
	URL         string
	Title       string
	Description *string
	FaviconURL  *string
	Priority    domain.Priority
	Tags        []string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate(maxTitleLen int) error {
	var errs []domain.FieldError

	if i.URL == "" {
		errs = append(errs, domain.FieldError{Field: "url", Message: "required"})
	} else if !domain.ValidateAbsoluteURL(i.URL) {
		errs = append(errs, domain.FieldError{Field: "url", Message: "must be an absolute http(s) URL"})
	}

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("too long (max %d)", maxTitleLen)})
	}

	if i.Description != nil && len(*i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("too long (max %d)", maxDescriptionLen)})
	}

	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
	}

	errs = append(errs, validateTags("tags", i.Tags)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds a partial bookmark update. Nil pointers leave the
// field untouched. Tags replace the full tag set only when TagsSet is
// true, so "no tags key" and "empty tags list" stay distinguishable.
type UpdateInput struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	Tags        []string
	TagsSet     bool
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate(maxTitleLen int) error {
	var errs []domain.FieldError

	if i.Title != nil {
		if *i.Title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		} else if len(*i.Title) > maxTitleLen {
			errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("too long (max %d)", maxTitleLen)})
		}
	}
	if i.Description != nil && len(*i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("too long (max %d)", maxDescriptionLen)})
	}
	if i.Priority != nil {
		if _, ok := domain.ParsePriority(*i.Priority); !ok {
			errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
		}
	}
	if i.Status != nil {
		if _, ok := domain.ParseStatus(*i.Status); !ok {
			errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
		}
	}
	if i.TagsSet {
		errs = append(errs, validateTags("tags", i.Tags)...)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// BulkInput names a bulk action over a set of bookmark IDs. Value
// carries the action argument for set_priority, add_tag, and
// remove_tag.
type BulkInput struct {
	Action domain.BulkAction
	IDs    []uuid.UUID
	Value  string
}

// Validate checks all fields and collects all errors.
func (i *BulkInput) Validate() error {
	var errs []domain.FieldError

	if !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "invalid value"})
	}
	if len(i.IDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "ids", Message: "required"})
	} else if len(i.IDs) > maxBulkIDs {
		errs = append(errs, domain.FieldError{Field: "ids", Message: fmt.Sprintf("too many (max %d)", maxBulkIDs)})
	}
	for idx, id := range i.IDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("ids[%d]", idx), Message: "required"})
		}
	}

	if i.Action.IsValid() && i.Action.RequiresValue() {
		switch {
		case i.Value == "":
			errs = append(errs, domain.FieldError{Field: "value", Message: "required"})
		case i.Action == domain.BulkSetPriority:
			if _, ok := domain.ParsePriority(i.Value); !ok {
				errs = append(errs, domain.FieldError{Field: "value", Message: "invalid priority"})
			}
		default: // add_tag, remove_tag
			if len(i.Value) > maxTagNameLen {
				errs = append(errs, domain.FieldError{Field: "value", Message: fmt.Sprintf("too long (max %d)", maxTagNameLen)})
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds list query parameters.
type ListInput struct {
	Status   string
	Priority string
	Tag      string
	Search   string
	Limit    int
	Offset   int
}

// ToFilter validates the input and converts it to a repository filter.
func (i *ListInput) ToFilter() (domain.BookmarkFilter, error) {
	var errs []domain.FieldError
	var filter domain.BookmarkFilter

	if i.Status != "" {
		status, ok := domain.ParseStatus(i.Status)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
		} else {
			filter.Status = &status
		}
	}
	if i.Priority != "" {
		priority, ok := domain.ParsePriority(i.Priority)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
		} else {
			filter.Priority = &priority
		}
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.BookmarkFilter{}, domain.NewValidationErrors(errs)
	}

	filter.Tag = i.Tag
	filter.Search = i.Search
	filter.Limit = clampLimit(i.Limit, 100, 50)
	filter.Offset = i.Offset

	return filter, nil
}

// clampLimit defaults a zero limit and caps it at max.
func clampLimit(limit, max, defaultVal int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit > max {
		return max
	}
	return limit
}

func validateTags(field string, tags []string) []domain.FieldError {
	var errs []domain.FieldError

	if len(tags) > maxTagsPerInput {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("too many (max %d)", maxTagsPerInput)})
	}
	for idx, tag := range tags {
		if domain.NormalizeTagName(tag) == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%d]", field, idx), Message: "required"})
		} else if len(tag) > maxTagNameLen {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%d]", field, idx), Message: fmt.Sprintf("too long (max %d)", maxTagNameLen)})
		}
	}

	return errs
}
