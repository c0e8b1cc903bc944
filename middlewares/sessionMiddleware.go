package middlewares

import (
	"net/http"

	"bitbucket.org/mmdatafocus/fleetcost_backend/config"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the session token into the calling user and
// stamps business scope onto the request context. Every tenant-scoped query
// below relies on that scope being present.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}
		username, exists, err := config.GetRedisValue("Token:" + token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUsernameInContext(ctx, username)

		user := models.User{}
		cached, err := config.GetRedisObject("User:"+username, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			c.Abort()
			return
		}
		if !cached {
			db := config.GetDB()
			if err := db.WithContext(ctx).Model(&models.User{}).
				Where("username = ?", username).Take(&user).Error; err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}
			if err := config.SetRedisObject("User:"+username, &user, 0); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
				c.Abort()
				return
			}
		}

		ctx = utils.SetBusinessIdInContext(ctx, user.BusinessId)
		ctx = utils.SetUserIdInContext(ctx, user.ID)
		ctx = utils.SetUserNameInContext(ctx, user.Name)
		if user.Role == models.UserRoleAdmin {
			ctx = utils.SetIsAdminInContext(ctx, true)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSession rejects requests that reached a protected group without a
// resolved business scope.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
		if !ok || businessId == "" {
			if isAdmin, _ := utils.GetIsAdminFromContext(c.Request.Context()); !isAdmin {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// RequireAdmin limits a route group to platform administrators.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, _ := utils.GetIsAdminFromContext(c.Request.Context())
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
