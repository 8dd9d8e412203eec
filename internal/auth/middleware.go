package auth

import (
	"errors"
	"net/http"
	"strings"

	"mishura/internal/api"

	"github.com/gin-gonic/gin"
)

const (
	ctxUsername = "auth_username"
	ctxRole     = "user_role"
)

// AuthMiddleware accepts only access tokens issued by tokens.
func AuthMiddleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Token is empty")
			return
		}

		claims, err := tokens.Parse(tokenString, KindAccess)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Token expired")
			case errors.Is(err, ErrInvalidTokenType):
				api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Access token required")
			default:
				api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid or malformed token")
			}
			return
		}

		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "User role not found")
			return
		}

		roleStr, ok := role.(string)
		if !ok {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid role type")
			return
		}

		if roleStr != requiredRole {
			api.Error(c, http.StatusForbidden, api.CodeForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func GetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUsername)
	if !exists {
		return "", false
	}

	name, ok := v.(string)
	return name, ok && name != ""
}
