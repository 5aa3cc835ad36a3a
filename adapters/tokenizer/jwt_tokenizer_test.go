package tokenizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbase/gatehouse/core"
)

var testIdentity = &core.Identity{
	UserID:    "user-1",
	AddressID: "addr-1",
	Wallet:    "0xabc0000000000000000000000000000000000def",
	Role:      core.RoleCreators,
	RoleName:  "Creators",
}

func newTestTokenizer() *JWTTokenizer {
	return NewJWTTokenizer([]byte("access-secret"), []byte("refresh-secret")).(*JWTTokenizer)
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	tk := newTestTokenizer()

	access, err := tk.IssueAccess(testIdentity)
	require.NoError(t, err)

	got, err := tk.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, testIdentity.UserID, got.UserID)
	assert.Equal(t, testIdentity.AddressID, got.AddressID)
	assert.Equal(t, testIdentity.Wallet, got.Wallet)
	assert.Equal(t, core.RoleCreators, got.Role)
	assert.Equal(t, "Creators", got.RoleName)

	refresh, err := tk.IssueRefresh(testIdentity)
	require.NoError(t, err)

	got, err = tk.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, testIdentity.UserID, got.UserID)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	tk := newTestTokenizer()

	access, err := tk.IssueAccess(testIdentity)
	require.NoError(t, err)
	refresh, err := tk.IssueRefresh(testIdentity)
	require.NoError(t, err)

	_, err = tk.ParseAccess(refresh)
	assert.ErrorIs(t, err, core.ErrInvalidToken)

	_, err = tk.ParseRefresh(access)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	tk := NewJWTTokenizerWithTTLs(
		[]byte("access-secret"), []byte("refresh-secret"),
		-time.Minute, -time.Minute,
	)

	access, err := tk.IssueAccess(testIdentity)
	require.NoError(t, err)

	_, err = tk.ParseAccess(access)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	tk := newTestTokenizer()
	other := NewJWTTokenizer([]byte("other-access"), []byte("other-refresh"))

	access, err := other.IssueAccess(testIdentity)
	require.NoError(t, err)

	_, err = tk.ParseAccess(access)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestMalformedTokensRejected(t *testing.T) {
	tk := newTestTokenizer()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "three garbage segments", token: "aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tk.ParseAccess(tt.token)
			assert.ErrorIs(t, err, core.ErrInvalidToken)
		})
	}
}

func TestSuccessiveIssuesDiffer(t *testing.T) {
	tk := newTestTokenizer()

	first, err := tk.IssueRefresh(testIdentity)
	require.NoError(t, err)
	second, err := tk.IssueRefresh(testIdentity)
	require.NoError(t, err)

	// JTIs differ even when the clock does not.
	assert.NotEqual(t, first, second)
}

func TestUnknownRoleRejected(t *testing.T) {
	tk := newTestTokenizer()

	token, err := tk.issue(&core.Identity{
		UserID:    "user-1",
		AddressID: "addr-1",
		Role:      core.Role(99),
	}, AudienceAccess, time.Minute, []byte("access-secret"))
	require.NoError(t, err)

	_, err = tk.ParseAccess(token)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}
