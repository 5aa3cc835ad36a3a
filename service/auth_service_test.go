package service

import (
	"context"
	"crypto/ecdsa"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbase/gatehouse/adapters/identity"
	"github.com/fanbase/gatehouse/adapters/store"
	"github.com/fanbase/gatehouse/adapters/tokenizer"
	"github.com/fanbase/gatehouse/core"
)

type testWallet struct {
	key     *ecdsa.PrivateKey
	address string
}

func newTestWallet(t *testing.T) *testWallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &testWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}
}

func (w *testWallet) sign(t *testing.T, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), w.key)
	require.NoError(t, err)
	sig[64] += 27
	return hexutil.Encode(sig)
}

func newTestService(identityStore *identity.MemoryStore) *AuthService {
	tk := tokenizer.NewJWTTokenizer([]byte("access-secret"), []byte("refresh-secret"))
	return NewAuthService(tk, store.NewMemoryStore(), identityStore, nil)
}

func challenge(t *testing.T, s *AuthService) (*core.Session, string) {
	t.Helper()
	ctx := context.Background()

	session, err := s.NewSession(ctx)
	require.NoError(t, err)

	nonce, err := s.IssueNonce(ctx, session)
	require.NoError(t, err)

	return session, nonce
}

func TestLoginHappyPath(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	session, nonce := challenge(t, s)

	identityResult, err := s.Login(ctx, session, wallet.address, wallet.sign(t, nonce))
	require.NoError(t, err)

	assert.Equal(t, "Users", identityResult.RoleName)
	assert.Equal(t, core.NormalizeAddress(wallet.address), identityResult.Wallet)
	assert.NotEmpty(t, identityResult.UserID)
	assert.NotEmpty(t, identityResult.AddressID)

	assert.Empty(t, session.Nonce)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// The access token is self-contained and valid.
	parsed, err := s.ValidateAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identityResult.UserID, parsed.UserID)
	assert.Equal(t, core.RoleUsers, parsed.Role)
}

func TestLoginWithoutNonce(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	session, err := s.NewSession(ctx)
	require.NoError(t, err)

	_, err = s.Login(ctx, session, wallet.address, wallet.sign(t, "whatever"))
	assert.ErrorIs(t, err, core.ErrNonceMissing)
}

func TestNonceConsumedExactlyOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	session, nonce := challenge(t, s)
	signature := wallet.sign(t, nonce)

	_, err := s.Login(ctx, session, wallet.address, signature)
	require.NoError(t, err)

	// Replaying the same signed nonce fails: the nonce is gone.
	_, err = s.Login(ctx, session, wallet.address, signature)
	assert.ErrorIs(t, err, core.ErrNonceMissing)
}

func TestNewNonceInvalidatesPrior(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	session, first := challenge(t, s)
	signature := wallet.sign(t, first)

	second, err := s.IssueNonce(ctx, session)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// A signature over the superseded nonce no longer verifies.
	_, err = s.Login(ctx, session, wallet.address, signature)
	assert.ErrorIs(t, err, core.ErrSignatureMismatch)
}

func TestSignatureMismatchKeepsChallenge(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)
	attacker := newTestWallet(t)

	session, nonce := challenge(t, s)

	// A signature from a different key cannot claim wallet's address.
	_, err := s.Login(ctx, session, wallet.address, attacker.sign(t, nonce))
	assert.ErrorIs(t, err, core.ErrSignatureMismatch)

	// The nonce survives a failed signature, so the client may retry signing.
	_, err = s.Login(ctx, session, wallet.address, wallet.sign(t, nonce))
	require.NoError(t, err)
}

func TestProvisioningIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	session1, nonce1 := challenge(t, s)
	first, err := s.Login(ctx, session1, wallet.address, wallet.sign(t, nonce1))
	require.NoError(t, err)

	// Second login presents the address in a different case.
	upper := "0x" + strings.ToUpper(wallet.address[2:])
	session2, nonce2 := challenge(t, s)
	second, err := s.Login(ctx, session2, upper, wallet.sign(t, nonce2))
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.AddressID, second.AddressID)
}

func TestConcurrentFirstLoginsCreateOneUser(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	const attempts = 8

	var wg sync.WaitGroup
	results := make([]*core.Identity, attempts)

	for i := 0; i < attempts; i++ {
		session, nonce := challenge(t, s)
		signature := wallet.sign(t, nonce)

		wg.Add(1)
		go func(i int, session *core.Session, signature string) {
			defer wg.Done()
			got, err := s.Login(ctx, session, wallet.address, signature)
			if err == nil {
				results[i] = got
			}
		}(i, session, signature)
	}
	wg.Wait()

	var userID string
	for _, got := range results {
		require.NotNil(t, got)
		if userID == "" {
			userID = got.UserID
		}
		assert.Equal(t, userID, got.UserID)
	}
}

func TestMissingBaselineRole(t *testing.T) {
	ctx := context.Background()
	noUsers := identity.NewMemoryStoreWithRoles(map[string]core.Role{
		core.RoleAdmin.String(): core.RoleAdmin,
	})
	s := newTestService(noUsers)
	wallet := newTestWallet(t)

	session, nonce := challenge(t, s)

	_, err := s.Login(ctx, session, wallet.address, wallet.sign(t, nonce))
	assert.ErrorIs(t, err, core.ErrRoleConfiguration)
}

func TestRefreshRotatesBothTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	session, nonce := challenge(t, s)
	_, err := s.Login(ctx, session, wallet.address, wallet.sign(t, nonce))
	require.NoError(t, err)

	oldAccess := session.AccessToken
	oldRefresh := session.RefreshToken

	newAccess, err := s.Refresh(ctx, session)
	require.NoError(t, err)

	assert.NotEqual(t, oldAccess, newAccess)
	assert.Equal(t, newAccess, session.AccessToken)
	assert.NotEqual(t, oldRefresh, session.RefreshToken)

	// A second rotation differs again.
	secondRefresh := session.RefreshToken
	_, err = s.Refresh(ctx, session)
	require.NoError(t, err)
	assert.NotEqual(t, secondRefresh, session.RefreshToken)
}

func TestRefreshErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())

	t.Run("no refresh token", func(t *testing.T) {
		session, err := s.NewSession(ctx)
		require.NoError(t, err)

		_, err = s.Refresh(ctx, session)
		assert.ErrorIs(t, err, core.ErrNoRefreshToken)
	})

	t.Run("tampered refresh token", func(t *testing.T) {
		wallet := newTestWallet(t)
		session, nonce := challenge(t, s)
		_, err := s.Login(ctx, session, wallet.address, wallet.sign(t, nonce))
		require.NoError(t, err)

		session.RefreshToken = session.RefreshToken + "x"
		_, err = s.Refresh(ctx, session)
		assert.ErrorIs(t, err, core.ErrInvalidRefreshToken)
	})
}

func TestSessionExpiryIsAnchoredToCreation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())

	t.Run("expired session refuses writes", func(t *testing.T) {
		session, err := s.NewSession(ctx)
		require.NoError(t, err)
		session.CreatedAt = time.Now().Add(-25 * time.Hour)

		_, err = s.IssueNonce(ctx, session)
		assert.ErrorIs(t, err, core.ErrSessionNotFound)
	})

	t.Run("writes do not slide the lifetime", func(t *testing.T) {
		session, err := s.NewSession(ctx)
		require.NoError(t, err)

		// Near the end of its fixed lifetime a write re-arms the store TTL
		// with the remainder only, so the session still dies on schedule.
		session.CreatedAt = time.Now().Add(-s.SessionTTL() + 50*time.Millisecond)

		_, err = s.IssueNonce(ctx, session)
		require.NoError(t, err)

		time.Sleep(80 * time.Millisecond)

		_, err = s.Session(ctx, session.ID)
		assert.ErrorIs(t, err, core.ErrSessionNotFound)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := newTestService(identity.NewMemoryStore())
	wallet := newTestWallet(t)

	session, nonce := challenge(t, s)
	_, err := s.Login(ctx, session, wallet.address, wallet.sign(t, nonce))
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, session))

	// Session is gone; refresh capability died with it.
	_, err = s.Session(ctx, session.ID)
	assert.ErrorIs(t, err, core.ErrSessionNotFound)

	// Logging out twice is not an error.
	assert.NoError(t, s.Logout(ctx, session))
}
