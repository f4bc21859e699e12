package middleware

import (
	"net/http"
	"strings"

	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/gin-gonic/gin"
)

// TokenValidator checks a bearer token and returns its subject.
type TokenValidator interface {
	Validate(token string) (subject string, err error)
}

// IdentityResolver turns a token subject back into a stored user.
type IdentityResolver interface {
	GetByEmail(email string) (*models.User, error)
}

const (
	ctxUserKey   = "currentUser"
	ctxUserIDKey = "userId"
	ctxEmailKey  = "email"
)

// AuthMiddleware resolves the caller's identity from the Authorization header.
// A token that is missing, malformed, expired, forged, or whose subject no
// longer resolves to an active user all produce the same 401 with a Bearer
// challenge.
func AuthMiddleware(tokens TokenValidator, users IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		subject, err := tokens.Validate(parts[1])
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		// The token may outlive its account; a vanished or deactivated user
		// must not resolve to a ghost identity.
		user, err := users.GetByEmail(subject)
		if err != nil || !user.IsActive {
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxUserIDKey, user.ID)
		c.Set(ctxEmailKey, user.Email)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{
		"message": message,
	})
	c.Abort()
}

// GetUserID returns the resolved caller's ID.
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(int64), true
}

// GetCurrentUser returns the resolved caller.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}
	return user.(*models.User), true
}
