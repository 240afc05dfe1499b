package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/auth"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
)

const (
	adminIDKey       = "adminId"
	adminUsernameKey = "adminUsername"

	// SessionCookieName is the cookie holding the signed admin session token.
	SessionCookieName = "admin_session"
)

// AdminVerifier re-validates the referenced admin on every guarded request.
type AdminVerifier interface {
	VerifyActive(ctx context.Context, adminID string) error
}

// AdminGuard validates the session token and confirms the admin still exists
// and is active. Anonymous browser clients are redirected to the login page;
// API/XHR clients get a 401 JSON body.
func AdminGuard(verifier AdminVerifier, loginPath string) gin.HandlerFunc {
	if loginPath == "" {
		loginPath = "/admin/login"
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		token := sessionToken(c)
		if token == "" {
			deny(c, loginPath)
			return
		}

		claims, err := auth.VerifySessionToken(token)
		if err != nil {
			deny(c, loginPath)
			return
		}

		if verifier != nil {
			if err := verifier.VerifyActive(c.Request.Context(), claims.Sub); err != nil {
				deny(c, loginPath)
				return
			}
		}

		c.Set(adminIDKey, claims.Sub)
		if claims.Username != "" {
			c.Set(adminUsernameKey, claims.Username)
		}
		c.Next()
	}
}

// AdminIDFromContext fetches the admin ID set by the guard.
func AdminIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(adminIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// AdminUsernameFromContext fetches the admin username set by the guard.
func AdminUsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(adminUsernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	}
	return ""
}

func deny(c *gin.Context, loginPath string) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, loginPath)
		c.Abort()
		return
	}
	respond.Error(c, http.StatusUnauthorized, "unauthorized", "admin login required", nil)
}

func wantsHTML(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return false
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}
