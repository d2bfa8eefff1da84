package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/policy"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// Authenticate is a Gin middleware for JWT authentication of API requests.
// It validates the bearer token and reloads the user record, so role and
// ownership checks always see current data rather than stale claims.
func Authenticate(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		user, ok := resolveBearer(c, authHeader, authService, userRepo)
		if !ok {
			return
		}

		c.Set(userContextKey, user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// OptionalAuthenticate resolves the caller identity when a bearer token is
// present but lets anonymous requests through. Used on public read routes
// that still honor per-caller behavior.
func OptionalAuthenticate(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		user, ok := resolveBearer(c, authHeader, authService, userRepo)
		if !ok {
			return
		}

		c.Set(userContextKey, user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

func resolveBearer(c *gin.Context, authHeader string, authService service.AuthService, userRepo repository.UserRepository) (*models.User, bool) {
	// format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return nil, false
	}

	user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return nil, false
	}

	return user, true
}

// RequireAdmin gates catalog and user administration routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CurrentUser(c)
		if !ok || !policy.CanManageUsers(caller) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller set by Authenticate, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
