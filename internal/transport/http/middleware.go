package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"wareeth/internal/app"
)

const userIDKey = "userID"

// RequireAuth validates the bearer token and stores the authenticated user
// id on the request context.
func RequireAuth(tokens *app.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func userID(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	uid, _ := id.(int64)
	return uid
}
