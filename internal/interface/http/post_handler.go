package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "accountsvc/internal/application"
	"accountsvc/internal/domain/entity"
	"accountsvc/pkg/response"
	"accountsvc/pkg/validation"
)

type PostHandler struct {
	Svc    *userapp.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *userapp.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	AuthorID int64  `json:"author_id" binding:"required,gt=0"`
	Content  string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p *entity.Post) postResponse {
	return postResponse{ID: p.ID, AuthorID: p.AuthorID, Content: p.Content, CreatedAt: p.CreatedAt}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.AuthorID, req.Content)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "author not found", nil)
			return
		}
		h.Logger.WithError(err).Error("create post failed")
		response.Error(c, http.StatusInternalServerError, "failed to create post", nil)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(p))
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid post id", nil)
		return
	}
	p, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userapp.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "post not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get post failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch post", nil)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(p))
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid post id", nil)
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		if errors.Is(err, userapp.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "post not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update post failed")
		response.Error(c, http.StatusInternalServerError, "failed to update post", nil)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(p))
}
