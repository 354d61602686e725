package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/pkg/response"
	"github.com/d60-Lab/blog-platform/pkg/token"
)

const (
	// CtxUserID and CtxIsStaff are the gin context keys set after a token
	// passes verification.
	CtxUserID  = "user_id"
	CtxIsStaff = "is_staff"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Auth rejects requests without a valid bearer token.
func Auth(maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}
		claims, err := maker.Parse(raw)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxIsStaff, claims.IsStaff)
		c.Next()
	}
}

// OptionalAuth populates the identity keys when a valid token is present but
// lets anonymous requests through. Read endpoints use it to personalize
// responses without requiring login.
func OptionalAuth(maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if claims, err := maker.Parse(raw); err == nil {
				c.Set(CtxUserID, claims.Subject)
				c.Set(CtxIsStaff, claims.IsStaff)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, empty when anonymous.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// IsStaff reports whether the authenticated user carries the staff flag.
func IsStaff(c *gin.Context) bool {
	return c.GetBool(CtxIsStaff)
}
