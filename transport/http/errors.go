package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fanbase/gatehouse/core"
)

// Stable error codes clients branch on.
const (
	CodeNonceMissing        = "NONCE_MISSING"
	CodeSignatureMismatch   = "SIGNATURE_MISMATCH"
	CodeRoleConfiguration   = "ROLE_CONFIGURATION"
	CodeMissingToken        = "MISSING_TOKEN"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNoRefreshToken      = "NO_REFRESH_TOKEN"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeBadRequest          = "BAD_REQUEST"
	CodeInternal            = "INTERNAL"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": message})
}

// respondAuthError maps a sentinel error from the auth service to its HTTP
// status and stable code. Validation failures are never retried server-side.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNonceMissing):
		respondError(c, http.StatusUnauthorized, CodeNonceMissing, "request a new nonce first")
	case errors.Is(err, core.ErrSignatureMismatch):
		respondError(c, http.StatusUnauthorized, CodeSignatureMismatch, "signature verification failed")
	case errors.Is(err, core.ErrRoleConfiguration):
		respondError(c, http.StatusInternalServerError, CodeRoleConfiguration, "role configuration error")
	case errors.Is(err, core.ErrNoRefreshToken):
		respondError(c, http.StatusUnauthorized, CodeNoRefreshToken, "session holds no refresh token")
	case errors.Is(err, core.ErrInvalidRefreshToken):
		respondError(c, http.StatusUnauthorized, CodeInvalidRefreshToken, "refresh token rejected")
	case errors.Is(err, core.ErrSessionNotFound):
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "no active session")
	default:
		respondError(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
