package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// AdminCookieName is the http-only cookie carrying the admin session token.
const AdminCookieName = "admin_token"

const claimsContextKey = "adminClaims"

// TokenValidator verifies admin session tokens.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*services.AdminClaims, error)
}

// AdminAuth reads the admin token from the session cookie, falling back to
// an Authorization: Bearer header, and stores the claims on the context.
func AdminAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if v, err := c.Cookie(AdminCookieName); err == nil && v != "" {
			token = v
		}
		if token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminOnly restricts access to admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAdminClaims extracts the admin claims set by AdminAuth.
func GetAdminClaims(c *gin.Context) (*services.AdminClaims, error) {
	if val, ok := c.Get(claimsContextKey); ok {
		if claims, ok := val.(*services.AdminClaims); ok && claims != nil {
			return claims, nil
		}
	}
	return nil, errors.New("admin claims not found in context")
}
