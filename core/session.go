package core

import "time"

// Session is the server-side state bound to one browser session, keyed by an
// opaque id carried in a signed cookie. Pre-login it holds at most the
// outstanding nonce; post-login it holds the token pair and resolved
// identity. All post-login fields are written together in one store write.
type Session struct {
	ID           string    `json:"id"`
	Nonce        string    `json:"nonce,omitempty"`
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Identity     *Identity `json:"identity,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Authenticated reports whether the session has completed a login.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity != nil && s.AccessToken != ""
}
