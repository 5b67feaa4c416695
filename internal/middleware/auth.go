package middleware

import (
	"github.com/coe-app/task-api/internal/constants"
	apierrors "github.com/coe-app/task-api/internal/errors"
	"github.com/coe-app/task-api/internal/models"
	"github.com/coe-app/task-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RequireAuth resolves the caller's identity from the access token
// cookie and short-circuits with 401 when the cookie is missing, the
// token is invalid or expired, or the user no longer exists. On success
// the resolved user is stored in the context so handlers never re-fetch.
func RequireAuth(tokens *services.TokenService, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(constants.AccessTokenCookie)
		if err != nil {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := tokens.Decode(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetUser(claims.UserID)
		if err != nil {
			apierrors.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetCurrentUser retrieves the resolved user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}
