package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/shift-scheduling-api/internal/constants"
	"github.com/yukikurage/shift-scheduling-api/internal/database"
	apierrors "github.com/yukikurage/shift-scheduling-api/internal/errors"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
)

// RequireAuth checks if the caller is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		accountID := session.Get(constants.ContextKeyAccountID)

		if accountID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store account ID in context for easy access in handlers
		c.Set(constants.ContextKeyAccountID, accountID)
		c.Next()
	}
}

// RequireManager loads the authenticated account and rejects callers
// without the manager role. It runs after RequireAuth.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := GetAccountID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var account models.Account
		if err := database.GetDB().First(&account, accountID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if account.Role != models.RoleManager {
			apierrors.Forbidden(c, "Manager role required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAccount, account)
		c.Next()
	}
}

// GetAccountID retrieves the current account ID from context
func GetAccountID(c *gin.Context) (uint64, bool) {
	accountID, exists := c.Get(constants.ContextKeyAccountID)
	if !exists {
		return 0, false
	}

	switch v := accountID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
