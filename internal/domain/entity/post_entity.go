package entity

import (
	"time"
)

// Post is a text post owned by a user. The author reference is stored as-is;
// ownership is not re-validated after creation.
type Post struct {
	ID        int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
