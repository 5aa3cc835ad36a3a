package core

import "errors"

var (
	// ErrNonceMissing is returned when no challenge nonce is outstanding for
	// the session; the client must re-request one.
	ErrNonceMissing = errors.New("no outstanding nonce for session")

	// ErrSignatureMismatch is returned when the recovered signing address does
	// not match the claimed address, or recovery itself fails.
	ErrSignatureMismatch = errors.New("signature does not match claimed address")

	// ErrRoleConfiguration is returned when the baseline role is absent from
	// the role reference set. Deployment misconfiguration, not retryable.
	ErrRoleConfiguration = errors.New("baseline role missing from role set")

	// ErrMissingToken is returned when a protected request carries no bearer token.
	ErrMissingToken = errors.New("authorization token missing")

	// ErrInvalidToken is returned when a token fails validation (malformed,
	// bad signature, wrong audience).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a token is past its expiry. Routine for
	// access tokens; the client recovers via refresh.
	ErrTokenExpired = errors.New("token has expired")

	// ErrUnauthorized is returned when no identity is present where one is required.
	ErrUnauthorized = errors.New("no authenticated identity")

	// ErrForbidden is returned when an authenticated identity's role is not in
	// the endpoint's allow-list.
	ErrForbidden = errors.New("role not permitted for this resource")

	// ErrNoRefreshToken is returned when the session holds no refresh token.
	ErrNoRefreshToken = errors.New("session holds no refresh token")

	// ErrInvalidRefreshToken is returned when the session's refresh token
	// fails validation; the client must restart login.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrSessionNotFound is returned when a session id resolves to no stored session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStoreOperationFailed wraps storage backend failures.
	ErrStoreOperationFailed = errors.New("store operation failed")
)
