package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/internal/eth"
	"github.com/fanbase/gatehouse/ports"
)

// usernameAttempts bounds retries when a generated placeholder username
// collides with an existing one.
const usernameAttempts = 3

// AuthService handles the challenge/response login flow, identity
// provisioning, token issuance and rotation, and logout.
type AuthService struct {
	tokenizer ports.Tokenizer
	sessions  ports.SessionStore
	identity  ports.IdentityStore
	eventPub  ports.EventPublisher

	sessionTTL time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	tokenizer ports.Tokenizer,
	sessions ports.SessionStore,
	identity ports.IdentityStore,
	eventPub ports.EventPublisher,
) *AuthService {
	return &AuthService{
		tokenizer:  tokenizer,
		sessions:   sessions,
		identity:   identity,
		eventPub:   eventPub,
		sessionTTL: 24 * time.Hour,
	}
}

// SessionTTL returns the server-side session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// NewSession creates an empty session with a fresh opaque id.
func (s *AuthService) NewSession(ctx context.Context) (*core.Session, error) {
	session := &core.Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}

	if err := s.sessions.Put(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

// Session loads a session by id.
func (s *AuthService) Session(ctx context.Context, id string) (*core.Session, error) {
	return s.sessions.Get(ctx, id)
}

// remainingTTL returns the session's time left within its fixed 24h
// lifetime. Writes re-arm the store TTL with the remainder only, so the
// expiry stays anchored to session creation rather than sliding with
// activity.
func (s *AuthService) remainingTTL(session *core.Session) (time.Duration, error) {
	remaining := s.sessionTTL - time.Since(session.CreatedAt)
	if remaining <= 0 {
		return 0, core.ErrSessionNotFound
	}
	return remaining, nil
}

// IssueNonce generates a fresh challenge nonce and stores it on the session,
// overwriting any prior unconsumed nonce. Only the most recent challenge is
// valid.
func (s *AuthService) IssueNonce(ctx context.Context, session *core.Session) (string, error) {
	nonceBytes := make([]byte, 32)
	if _, err := rand.Read(nonceBytes); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(nonceBytes)

	ttl, err := s.remainingTTL(session)
	if err != nil {
		return "", err
	}

	session.Nonce = nonce
	if err := s.sessions.Put(ctx, session, ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return nonce, nil
}

// Login verifies a wallet signature over the session's outstanding nonce,
// resolves (or provisions) the identity behind the recovered address, issues
// a token pair, and writes the authenticated session in one step. The nonce
// is consumed on success and on signature failure is left in place so the
// client may retry signing.
func (s *AuthService) Login(ctx context.Context, session *core.Session, claimedAddress, signature string) (*core.Identity, error) {
	if session.Nonce == "" {
		return nil, core.ErrNonceMissing
	}

	ok, err := eth.VerifySignature(session.Nonce, signature, claimedAddress)
	if err != nil || !ok {
		return nil, core.ErrSignatureMismatch
	}

	identity, err := s.resolveIdentity(ctx, claimedAddress)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokenizer.IssueAccess(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenizer.IssueRefresh(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	ttl, err := s.remainingTTL(session)
	if err != nil {
		return nil, err
	}

	// Consume the nonce and persist tokens + identity together.
	session.Nonce = ""
	session.AccessToken = accessToken
	session.RefreshToken = refreshToken
	session.Identity = identity

	if err := s.sessions.Put(ctx, session, ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogin(ctx, identity.UserID, identity.Wallet); err != nil {
			log.Printf("warning: failed to publish login event: %v", err)
		}
	}

	return identity, nil
}

// resolveIdentity maps a verified wallet address to its Address and User
// records, creating both on first sight. Creation races with concurrent
// first logins are absorbed by re-reading after a uniqueness conflict.
func (s *AuthService) resolveIdentity(ctx context.Context, wallet string) (*core.Identity, error) {
	normalized := core.NormalizeAddress(wallet)

	addr, err := s.identity.FindAddress(ctx, normalized)
	if errors.Is(err, ports.ErrNotFound) {
		addr, err = s.createAddress(ctx, normalized)
	}
	if err != nil {
		return nil, err
	}

	user, err := s.identity.FindUserByAddress(ctx, addr.ID)
	if errors.Is(err, ports.ErrNotFound) {
		user, err = s.createUser(ctx, addr.ID)
	}
	if err != nil {
		return nil, err
	}

	if !user.Role.Valid() {
		return nil, core.ErrRoleConfiguration
	}

	return &core.Identity{
		UserID:    user.ID,
		AddressID: addr.ID,
		Wallet:    addr.Address,
		Role:      user.Role,
		RoleName:  user.Role.String(),
	}, nil
}

func (s *AuthService) createAddress(ctx context.Context, normalized string) (*core.Address, error) {
	addr := &core.Address{
		ID:        uuid.New().String(),
		Address:   normalized,
		Status:    core.AddressStatusActive,
		CreatedAt: time.Now(),
	}

	err := s.identity.CreateAddress(ctx, addr)
	if errors.Is(err, ports.ErrConflict) {
		// A concurrent first login created the row; use theirs.
		return s.identity.FindAddress(ctx, normalized)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return addr, nil
}

func (s *AuthService) createUser(ctx context.Context, addressID string) (*core.User, error) {
	roles, err := s.identity.Roles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}

	baseline, ok := roles[core.RoleUsersName]
	if !ok {
		return nil, core.ErrRoleConfiguration
	}

	var lastErr error
	for i := 0; i < usernameAttempts; i++ {
		user := &core.User{
			ID:          uuid.New().String(),
			AddressID:   addressID,
			Role:        baseline,
			Username:    placeholderUsername(),
			DisplayName: "",
			CreatedAt:   time.Now(),
		}

		err := s.identity.CreateUser(ctx, user)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, ports.ErrConflict) {
			// Either the address row got a user concurrently, or the
			// generated username collided. A re-read distinguishes the two.
			if existing, findErr := s.identity.FindUserByAddress(ctx, addressID); findErr == nil {
				return existing, nil
			}
			lastErr = err
			continue
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return nil, fmt.Errorf("failed to create user: %w", lastErr)
}

func placeholderUsername() string {
	suffix := make([]byte, 6)
	// crypto/rand.Read never fails on supported platforms.
	_, _ = rand.Read(suffix)
	return "user_" + hex.EncodeToString(suffix)
}

// Refresh validates the session's refresh token and rotates the full token
// pair. The refresh token is read from the session only, never from the
// request.
func (s *AuthService) Refresh(ctx context.Context, session *core.Session) (string, error) {
	if session.RefreshToken == "" {
		return "", core.ErrNoRefreshToken
	}

	identity, err := s.tokenizer.ParseRefresh(session.RefreshToken)
	if err != nil {
		return "", core.ErrInvalidRefreshToken
	}

	accessToken, err := s.tokenizer.IssueAccess(identity)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenizer.IssueRefresh(identity)
	if err != nil {
		return "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	ttl, err := s.remainingTTL(session)
	if err != nil {
		return "", err
	}

	session.AccessToken = accessToken
	session.RefreshToken = refreshToken
	session.Identity = identity

	if err := s.sessions.Put(ctx, session, ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return accessToken, nil
}

// Logout destroys the server-side session. Logging out an already-destroyed
// session is not an error. Already-issued access tokens stay valid until
// their expiry; only the refresh capability dies with the session.
func (s *AuthService) Logout(ctx context.Context, session *core.Session) error {
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if s.eventPub != nil && session.Identity != nil {
		if err := s.eventPub.PublishLogout(ctx, session.Identity.UserID, session.Identity.Wallet); err != nil {
			log.Printf("warning: failed to publish logout event: %v", err)
		}
	}

	return nil
}

// ValidateAccessToken validates a bearer access token and returns its
// identity. Pure computation, no store lookup.
func (s *AuthService) ValidateAccessToken(token string) (*core.Identity, error) {
	return s.tokenizer.ParseAccess(token)
}
