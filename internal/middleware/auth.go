// internal/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/models"
	"github.com/shopworks/storefront-backend/internal/utils"
)

const principalKey = "principal"

// Capability is the declared access level of an operation. Routes are
// tagged with exactly one; Require evaluates the tag before the handler
// body runs, so a failed gate never reaches the operation.
type Capability int

const (
	Public Capability = iota
	Authenticated
	AdminOnly
)

// Require translates a capability tag into its middleware chain.
func Require(cap Capability, db *gorm.DB, cfg config.JWTConfig) []gin.HandlerFunc {
	switch cap {
	case Authenticated:
		return []gin.HandlerFunc{Authenticate(db, cfg)}
	case AdminOnly:
		return []gin.HandlerFunc{Authenticate(db, cfg), AdminRequired()}
	default:
		return nil
	}
}

// Authenticate verifies the session credential (HTTP-only cookie, with
// Authorization: Bearer as a fallback), resolves the underlying user, and
// attaches the password-free projection as the request principal.
func Authenticate(db *gorm.DB, cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cfg.CookieName)
		if token == "" {
			utils.Fail(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Fail(c, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}
			utils.Error(c, err)
			return
		}

		c.Set(principalKey, models.NewUserProfile(&user))
		c.Next()
	}
}

// AdminRequired runs after Authenticate; an absent principal fails the
// same as a non-admin one.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok || !principal.IsAdmin {
			utils.Fail(c, http.StatusForbidden, "Not authorized as admin")
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (models.UserProfile, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return models.UserProfile{}, false
	}
	principal, ok := v.(models.UserProfile)
	return principal, ok
}

// SetPrincipal is used by tests to install a principal without a token.
func SetPrincipal(c *gin.Context, principal models.UserProfile) {
	c.Set(principalKey, principal)
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
