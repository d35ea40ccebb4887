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
	"accountsvc/internal/interface/middleware"
	"accountsvc/pkg/response"
	"accountsvc/pkg/validation"
)

type UserHandler struct {
	Svc               *userapp.UserService
	Logger            *logrus.Logger
	VerifyRedirectURL string
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger, verifyRedirectURL string) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, VerifyRedirectURL: verifyRedirectURL}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required"`
	Address  string `json:"address"`
}

type updateUserRequest struct {
	Nickname *string `json:"nickname"`
	Address  *string `json:"address"`
}

// userResponse is the public projection: no address, no certification code.
type userResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Status   string `json:"status"`
}

// myProfileResponse is the caller's own view and includes the address.
type myProfileResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	Address     string     `json:"address"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Status: string(u.Status)}
}

func toMyProfileResponse(u *entity.User) myProfileResponse {
	return myProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		Address:     u.Address,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
	}
}

// Create registers a new PENDING account and triggers the certification email.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Create(c.Request.Context(), userapp.CreateUserInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("create user failed")
		response.Error(c, http.StatusInternalServerError, "failed to create user", nil)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// Get returns an ACTIVE user by id. PENDING users and unknown ids are both
// reported as not found.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id, true)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get user failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch user", nil)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// VerifyEmail activates the account when the certification code matches and
// redirects to the configured landing page.
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	code := c.Query("certificationCode")
	if code == "" {
		response.Error(c, http.StatusBadRequest, "certificationCode is required", nil)
		return
	}

	if _, err := h.Svc.VerifyEmail(c.Request.Context(), id, code); err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, userapp.ErrCertificationCodeMismatch):
			response.Error(c, http.StatusBadRequest, "certification code does not match", nil)
		default:
			h.Logger.WithError(err).Error("verify email failed")
			response.Error(c, http.StatusInternalServerError, "failed to verify email", nil)
		}
		return
	}
	c.Redirect(http.StatusFound, h.VerifyRedirectURL)
}

// GetMe returns the caller's own ACTIVE profile, address included, and stamps
// the last-login time on the way.
func (h *UserHandler) GetMe(c *gin.Context) {
	email := middleware.CallerEmail(c)
	u, err := h.Svc.GetByEmail(c.Request.Context(), email, true)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get profile failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch profile", nil)
		return
	}

	if err := h.Svc.Login(c.Request.Context(), u.ID); err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to stamp login time")
	} else if fresh, ferr := h.Svc.GetByID(c.Request.Context(), u.ID, false); ferr == nil {
		u = fresh
	}
	c.JSON(http.StatusOK, toMyProfileResponse(u))
}

// UpdateMe applies a partial nickname/address update to the caller's record.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	email := middleware.CallerEmail(c)
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.GetByEmail(c.Request.Context(), email, true)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get profile failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch profile", nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), u.ID, userapp.UpdateUserInput{
		Nickname: req.Nickname,
		Address:  req.Address,
	})
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("update profile failed")
		response.Error(c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	c.JSON(http.StatusOK, toMyProfileResponse(updated))
}

// Search queries the user search index by email or nickname.
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": hits})
}
