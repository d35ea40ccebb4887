package repository

import (
	"context"
	"errors"

	"accountsvc/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches a lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a save violates the unique email
	// constraint; callers must be able to tell it apart from other failures.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the interface for user-related database operations.
// Save inserts when the user has no ID yet and updates otherwise; the
// status-filtered lookups back the active-gated read paths.
type UserRepository interface {
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByIDAndStatus(ctx context.Context, id int64, status entity.UserStatus) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmailAndStatus(ctx context.Context, email string, status entity.UserStatus) (*entity.User, error)
}
