package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/service"
)

// identityKey is the gin context key holding the authenticated identity.
const identityKey = "gatehouse.identity"

// IdentityFrom returns the identity attached by AuthMiddleware.
func IdentityFrom(c *gin.Context) (*core.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*core.Identity)
	return identity, ok
}

// AuthMiddleware validates the bearer access token and attaches the decoded
// identity to the request context. Validation is pure claim inspection; no
// store is consulted, so an access token stays valid until its expiry even
// after logout.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			respondError(c, http.StatusUnauthorized, CodeMissingToken, "authorization header is required")
			return
		}

		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found || token == "" {
			respondError(c, http.StatusUnauthorized, CodeMissingToken, "authorization header must be a bearer token")
			return
		}

		identity, err := authService.ValidateAccessToken(token)
		if err != nil {
			// Expiry is routine; the client refreshes and retries.
			if errors.Is(err, core.ErrTokenExpired) {
				respondError(c, http.StatusUnauthorized, CodeInvalidToken, "access token expired")
			} else {
				respondError(c, http.StatusUnauthorized, CodeInvalidToken, "access token rejected")
			}
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRoles is the role guard: a set-membership check of the
// authenticated identity's role against the endpoint's allow-list. Must run
// after AuthMiddleware; a missing identity is Unauthorized, a wrong role is
// Forbidden.
func RequireRoles(allowed core.AllowList) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
			return
		}

		if !allowed.Contains(identity.Role) {
			respondError(c, http.StatusForbidden, CodeForbidden, "role not permitted for this resource")
			return
		}

		c.Next()
	}
}
