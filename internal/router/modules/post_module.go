package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"accountsvc/internal/container"
	handlers "accountsvc/internal/interface/http"
	"accountsvc/internal/interface/middleware"
)

// PostModule wires post CRUD into routes under /api/posts.
type PostModule struct {
	Handler *handlers.PostHandler
}

func NewPostModule(h *handlers.PostHandler) *PostModule {
	return &PostModule{Handler: h}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP())

	posts := rg.Group("/posts")
	posts.POST("", createLimiter, m.Handler.Create)
	posts.GET("/:id", m.Handler.Get)
	posts.PUT("/:id", m.Handler.Update)
}
