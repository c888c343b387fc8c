package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// PhoneKey is the gin context key holding the authenticated user's phone.
const PhoneKey = "phone"

type AccessValidator interface {
	ValidateAccessToken(token string) (string, error)
}

func AuthMiddleware(v AccessValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		phone, err := v.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(PhoneKey, phone)

		c.Next()
	}
}
