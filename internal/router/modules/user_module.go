package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"accountsvc/internal/container"
	handlers "accountsvc/internal/interface/http"
	"accountsvc/internal/interface/middleware"
)

// UserModule wires user HTTP handlers into routes.
// Public: POST /api/users, GET /api/users/:id, GET /api/users/:id/verify,
// GET /api/users/search (the index holds ACTIVE users only, so search exposes
// nothing the by-id lookup does not).
// Caller-identified (EMAIL header): GET /api/users/me, PUT /api/users/me
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())

	users := rg.Group("/users")

	// /users/me must be registered before /users/:id so Gin does not treat
	// "me" as an id.
	me := users.Group("/me")
	me.Use(middleware.Identity())
	{
		me.GET("", m.Handler.GetMe)
		me.PUT("", m.Handler.UpdateMe)
	}

	users.POST("", createLimiter, m.Handler.Create)
	users.GET("/search", m.Handler.Search)
	users.GET("/:id", m.Handler.Get)
	users.GET("/:id/verify", verifyLimiter, m.Handler.VerifyEmail)
}
