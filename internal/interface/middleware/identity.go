package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"accountsvc/pkg/response"
)

// callerEmailKey is the Gin context key holding the caller's email.
const callerEmailKey = "caller_email"

// Identity reads the EMAIL header the caller identifies itself with and puts
// it on the context. This is identification, not authentication: there is no
// credential checking and the caller can only act on its own record.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader("EMAIL"))
		if email == "" {
			response.Error(c, http.StatusUnauthorized, "missing EMAIL header", nil)
			return
		}
		c.Set(callerEmailKey, email)
		c.Next()
	}
}

// CallerEmail returns the email set by Identity, empty if absent.
func CallerEmail(c *gin.Context) string {
	return c.GetString(callerEmailKey)
}
