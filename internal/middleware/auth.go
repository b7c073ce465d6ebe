package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/jwt"
	"vivaha-be/internal/models"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID  = "user_id"
	ContextEmail   = "email"
	ContextIsAdmin = "is_admin"
)

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header and
// stores the token's claims in the gin context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Access denied. No token provided."))
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Invalid token."))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// AdminChecker reports whether a user holds admin rights right now.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin must run after AuthMiddleware. The token's admin claim is
// required and then confirmed against admins, so revoking the flag takes
// effect before the token expires.
func RequireAdmin(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok || !c.GetBool(ContextIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Fail("Admin access required."))
			return
		}

		isAdmin, err := admins.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.Fail("Internal server error"))
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Fail("Admin access required."))
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID, or false when the request did
// not pass through AuthMiddleware.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}
