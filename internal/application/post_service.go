package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"accountsvc/internal/domain/entity"
	"accountsvc/internal/domain/repository"
)

var ErrPostNotFound = errors.New("post not found")

// PostService is plain ownership-scoped CRUD over posts. The author is
// checked to exist at creation time; afterwards only the stored id remains.
type PostService struct {
	Posts  repository.PostRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

func (s *PostService) Create(ctx context.Context, authorID int64, content string) (*entity.Post, error) {
	if _, err := s.Users.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	p := &entity.Post{AuthorID: authorID, Content: content}
	return s.Posts.Save(ctx, p)
}

func (s *PostService) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update replaces the content wholesale; there is no partial patch for posts.
func (s *PostService) Update(ctx context.Context, id int64, content string) (*entity.Post, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	p.Content = content
	return s.Posts.Save(ctx, p)
}
