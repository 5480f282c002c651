package middleware

import (
	"net/http"
	"strings"

	"clinic-backend/internal/token"
	"clinic-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRoles    = "userRoles"
)

// TokenVerifier checks a bearer token's signature and expiry and returns
// its claims. Implemented by token.Issuer.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Authenticate validates the bearer token and attaches the caller's
// identity and role set to the request context. Any valid token passes.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, verifier); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole validates the bearer token and allows the call iff the
// caller's role set intersects allowedRoles. There is no role hierarchy:
// SUPERADMIN passes only where it is listed.
func RequireRole(verifier TokenVerifier, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, verifier)
		if !ok {
			return
		}

		allowed := false
		for _, have := range claims.Roles {
			for _, want := range allowedRoles {
				if have == want {
					allowed = true
					break
				}
			}
			if allowed {
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Next()
	}
}

func authenticate(c *gin.Context, verifier TokenVerifier) (*token.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization header is missing"))
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
		return nil, false
	}

	claims, err := verifier.Verify(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid or expired token"))
		return nil, false
	}

	c.Set(ContextUserID, claims.Subject)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRoles, claims.Roles)
	return claims, true
}
