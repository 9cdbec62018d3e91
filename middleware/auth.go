package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/utils"
)

// AuthMiddleware verifies the Bearer token and stores the caller's
// identity on the request context for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header required", "")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Invalid authorization header format", "")
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware; it rejects any caller
// whose token does not carry the admin role.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message, detail string) {
	body := gin.H{"success": false, "message": message}
	if detail != "" {
		body["error"] = detail
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, body)
}
