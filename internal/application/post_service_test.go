package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountsvc/internal/domain/entity"
	"accountsvc/internal/domain/repository"
)

type memPostRepo struct {
	posts  map[int64]*entity.Post
	nextID int64
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[int64]*entity.Post{}, nextID: 1}
}

func (r *memPostRepo) Save(_ context.Context, p *entity.Post) (*entity.Post, error) {
	now := time.Now().UTC()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
		p.CreatedAt = now
	} else if _, ok := r.posts[p.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	p.UpdatedAt = now
	cp := *p
	r.posts[p.ID] = &cp
	return p, nil
}

func (r *memPostRepo) FindByID(_ context.Context, id int64) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func newPostFixture(t *testing.T) (*PostService, *entity.User) {
	t.Helper()
	users := newMemUserRepo()
	author, err := users.Save(context.Background(), &entity.User{
		Email:             "author@x.com",
		Nickname:          "author",
		Status:            entity.UserStatusActive,
		CertificationCode: "code",
	})
	require.NoError(t, err)
	return NewPostService(newMemPostRepo(), users, nil), author
}

func TestPostCreate_StoresAuthorAndContent(t *testing.T) {
	s, author := newPostFixture(t)

	p, err := s.Create(context.Background(), author.ID, "content")
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, author.ID, p.AuthorID)
	assert.Equal(t, "content", p.Content)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestPostCreate_UnknownAuthor(t *testing.T) {
	s, _ := newPostFixture(t)

	_, err := s.Create(context.Background(), 999, "content")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostGetByID_ReturnsExistingPost(t *testing.T) {
	s, author := newPostFixture(t)

	created, err := s.Create(context.Background(), author.ID, "content")
	require.NoError(t, err)

	found, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestPostGetByID_UnknownID(t *testing.T) {
	s, _ := newPostFixture(t)

	_, err := s.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostUpdate_ReplacesContent(t *testing.T) {
	s, author := newPostFixture(t)

	created, err := s.Create(context.Background(), author.ID, "content")
	require.NoError(t, err)

	updated, err := s.Update(context.Background(), created.ID, "update content")
	require.NoError(t, err)
	assert.Equal(t, "update content", updated.Content)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
}

func TestPostUpdate_UnknownID(t *testing.T) {
	s, _ := newPostFixture(t)

	_, err := s.Update(context.Background(), 1, "update content")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
