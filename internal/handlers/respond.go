package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conformo/internal/middleware"
)

func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// auth pulls the request's AuthContext; aborts with 401 when missing.
// Routes behind RequireAuth never hit the abort path, it covers misuse.
func auth(c *gin.Context) (middleware.AuthContext, bool) {
	ac, ok := middleware.Auth(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return ac, ok
}
