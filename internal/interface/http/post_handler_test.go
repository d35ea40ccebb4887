package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "accountsvc/internal/application"
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

func newPostTestRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	logger := logrus.New()
	svc := userapp.NewPostService(newMemPostRepo(), users, logger)
	h := NewPostHandler(svc, logger)

	r := gin.New()
	posts := r.Group("/api/posts")
	posts.POST("", h.Create)
	posts.GET("/:id", h.Get)
	posts.PUT("/:id", h.Update)

	return r, users
}

func TestCreatePost_Returns201(t *testing.T) {
	r, users := newPostTestRouter(t)
	author := seedUser(t, users, "author@x.com", "author", "Seoul", entity.UserStatusActive)

	w := doJSON(r, http.MethodPost, "/api/posts", `{"author_id":1,"content":"content"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, author.ID, body["author_id"])
	assert.Equal(t, "content", body["content"])
}

func TestCreatePost_UnknownAuthorReturns404(t *testing.T) {
	r, _ := newPostTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/posts", `{"author_id":999,"content":"content"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPost_UnknownIDReturns404(t *testing.T) {
	r, _ := newPostTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/posts/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePost_ReplacesContent(t *testing.T) {
	r, users := newPostTestRouter(t)
	seedUser(t, users, "author@x.com", "author", "Seoul", entity.UserStatusActive)

	w := doJSON(r, http.MethodPost, "/api/posts", `{"author_id":1,"content":"content"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPut, "/api/posts/1", `{"content":"update content"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "update content", body["content"])
}

func TestUpdatePost_UnknownIDReturns404(t *testing.T) {
	r, _ := newPostTestRouter(t)

	w := doJSON(r, http.MethodPut, "/api/posts/1", `{"content":"update content"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
