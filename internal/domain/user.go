package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an opaque identity scoping all bookmark and tag queries.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
