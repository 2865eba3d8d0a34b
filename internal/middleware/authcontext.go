package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/models"
)

const authContextKey = "AuthContext"

// AuthContext is the explicit authentication variant carried on every
// request: Authenticated(user) or Anonymous. In demo mode an anonymous
// visitor is bound read-only to the demo organization, so downstream code
// always has an organization id and never consults a global flag.
type AuthContext struct {
	Authenticated  bool
	UserID         uint
	Role           models.UserRole
	OrganizationID uint
}

// InjectAuthContext resolves the session (or the demo fallback) into an
// AuthContext. demoOrgID is 0 when demo mode is disabled.
func InjectAuthContext(demoOrgID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := database.DB.First(&user, uid).Error; err == nil {
					c.Set(authContextKey, AuthContext{
						Authenticated:  true,
						UserID:         user.ID,
						Role:           user.Role,
						OrganizationID: user.OrganizationID,
					})
					c.Next()
					return
				}
			}
		}

		if demoOrgID > 0 {
			c.Set(authContextKey, AuthContext{
				Role:           models.RoleViewer,
				OrganizationID: demoOrgID,
			})
		}

		c.Next()
	}
}

// Auth returns the request's AuthContext; ok is false when the visitor is
// neither logged in nor covered by demo mode.
func Auth(c *gin.Context) (AuthContext, bool) {
	v, exists := c.Get(authContextKey)
	if !exists {
		return AuthContext{}, false
	}
	ac, ok := v.(AuthContext)
	return ac, ok
}
