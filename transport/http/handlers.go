package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/service"
)

// AuthHandlers contains HTTP handlers for the auth endpoints.
type AuthHandlers struct {
	authService *service.AuthService
	cookies     *CookieCodec
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authService *service.AuthService, cookies *CookieCodec) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		cookies:     cookies,
	}
}

// session loads the request's session from the signed cookie, or nil if the
// cookie is absent, forged, or the session has expired.
func (h *AuthHandlers) session(c *gin.Context) *core.Session {
	id, ok := h.cookies.SessionID(c)
	if !ok {
		return nil
	}

	session, err := h.authService.Session(c.Request.Context(), id)
	if err != nil {
		return nil
	}

	return session
}

// Nonce handles GET /auth/nonce. It creates a session on first contact and
// stores a fresh challenge nonce on it, overwriting any prior one.
func (h *AuthHandlers) Nonce(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		created, err := h.authService.NewSession(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, CodeInternal, "failed to create session")
			return
		}
		session = created
		h.cookies.SetSessionCookie(c, session.ID, int(h.authService.SessionTTL().Seconds()))
	}

	nonce, err := h.authService.IssueNonce(c.Request.Context(), session)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, "failed to issue nonce")
		return
	}

	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}

// Login handles POST /auth/login: verifies the signature over the session's
// nonce, provisions the identity if needed, and issues the token pair.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req struct {
		Address   string `json:"address" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "address and signature are required")
		return
	}

	session := h.session(c)
	if session == nil {
		// No session means no outstanding challenge.
		respondAuthError(c, core.ErrNonceMissing)
		return
	}

	identity, err := h.authService.Login(c.Request.Context(), session, req.Address, req.Signature)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": session.AccessToken,
		"user":        identity,
	})
}

// CurrentSession handles GET /auth/session: returns the authenticated
// identity and access token without mutating anything.
func (h *AuthHandlers) CurrentSession(c *gin.Context) {
	session := h.session(c)
	if session == nil || !session.Authenticated() {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "no authenticated session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": session.AccessToken,
		"user":        session.Identity,
	})
}

// Refresh handles POST /auth/refresh: rotates the full token pair using the
// refresh token held server-side in the session. The refresh token is never
// accepted from the request body or headers.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		respondAuthError(c, core.ErrNoRefreshToken)
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), session)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout handles POST /auth/logout: destroys the session and clears the
// cookie. Idempotent; logging out twice succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	session := h.session(c)
	if session != nil {
		if err := h.authService.Logout(c.Request.Context(), session); err != nil && !errors.Is(err, core.ErrSessionNotFound) {
			respondError(c, http.StatusInternalServerError, CodeInternal, "failed to destroy session")
			return
		}
	}

	h.cookies.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
