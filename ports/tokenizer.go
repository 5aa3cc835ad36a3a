package ports

import "github.com/fanbase/gatehouse/core"

// Tokenizer converts between identities and signed bearer tokens. Access and
// refresh tokens are signed with distinct secrets and TTLs; parsing one kind
// with the other's secret always fails.
type Tokenizer interface {
	// IssueAccess mints a short-lived access token carrying the identity.
	IssueAccess(identity *core.Identity) (string, error)

	// IssueRefresh mints a long-lived refresh token carrying the identity.
	IssueRefresh(identity *core.Identity) (string, error)

	// ParseAccess validates an access token and returns its identity.
	// Returns core.ErrTokenExpired past expiry, core.ErrInvalidToken otherwise.
	ParseAccess(token string) (*core.Identity, error)

	// ParseRefresh validates a refresh token and returns its identity.
	ParseRefresh(token string) (*core.Identity, error)
}
