package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"honestspace/server/internal/auth"
	"honestspace/server/internal/models"
)

const contextUserKey = "current_user"

// RequireAuth validates the bearer access token and loads the account onto
// the request context. Suspended and deactivated accounts are rejected even
// when their token is otherwise valid.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := h.jwt.ValidateToken(tokenString, auth.TokenKindAccess)
		if err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}
		userID, err := auth.UserIDFromClaims(claims)
		if err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}

		user, err := h.db.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}
		if !user.CanAuthenticate() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended or deactivated"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireRole allows only the named roles past. Admins always pass.
func (h *Handler) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if user.IsAdmin() {
			c.Next()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// currentUser returns the account loaded by RequireAuth, or nil outside an
// authenticated route.
func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
