package repository

import (
	"context"

	"accountsvc/internal/domain/entity"
)

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	Save(ctx context.Context, p *entity.Post) (*entity.Post, error)
	FindByID(ctx context.Context, id int64) (*entity.Post, error)
}
