package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAdmin gates a route to tokens carrying the admin role. It expects
// RequireAuth to have stored the verified claims under "user" first.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get("user")
		claims, ok := value.(jwt.MapClaims)
		if !exists || !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		if role, _ := claims["role"].(string); role != "admin" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "This action requires an administrator account"})
			return
		}

		ctx.Next()
	}
}
