package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
	"github.com/pharmacare/pharmacare-api/pkg/utils"
)

// AuthMiddleware validates the Bearer token and loads the user's identity,
// roles and permissions into the Gin context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("user_permissions", claims.Permissions)

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, writing the
// error response itself when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.Unauthorized(c, "Authorization header is required")
		return "", false
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		response.Unauthorized(c, "Invalid authorization header format")
		return "", false
	}

	return parts[1], true
}

// RequirePermission gates a route group on a named permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !contextHas(c, "user_permissions", permission) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route group on any of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, role := range roles {
			if contextHas(c, "user_roles", role) {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}

// contextHas reports whether the named context string slice contains want.
func contextHas(c *gin.Context, key, want string) bool {
	val, exists := c.Get(key)
	if !exists {
		return false
	}
	values, ok := val.([]string)
	if !ok {
		return false
	}
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
