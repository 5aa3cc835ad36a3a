package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/ports"
)

const (
	AudienceAccess  = "gatehouse:access"
	AudienceRefresh = "gatehouse:refresh"

	// DefaultAccessTTL bounds the blast radius of a leaked access token.
	DefaultAccessTTL = 15 * time.Minute

	// DefaultRefreshTTL is the refresh window; the session holding the
	// refresh token usually expires first.
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// JWTTokenizer implements ports.Tokenizer with HS256 and two independent
// secrets, one per token kind.
type JWTTokenizer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTTokenizer creates a tokenizer with the default TTLs.
func NewJWTTokenizer(accessSecret, refreshSecret []byte) ports.Tokenizer {
	return &JWTTokenizer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     DefaultAccessTTL,
		refreshTTL:    DefaultRefreshTTL,
	}
}

// NewJWTTokenizerWithTTLs creates a tokenizer with explicit TTLs. Used by
// tests to exercise expiry behavior.
func NewJWTTokenizerWithTTLs(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) ports.Tokenizer {
	return &JWTTokenizer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess mints a short-lived access token for the identity.
func (j *JWTTokenizer) IssueAccess(identity *core.Identity) (string, error) {
	return j.issue(identity, AudienceAccess, j.accessTTL, j.accessSecret)
}

// IssueRefresh mints a long-lived refresh token for the identity.
func (j *JWTTokenizer) IssueRefresh(identity *core.Identity) (string, error) {
	return j.issue(identity, AudienceRefresh, j.refreshTTL, j.refreshSecret)
}

func (j *JWTTokenizer) issue(identity *core.Identity, audience string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AddressID: identity.AddressID,
		Wallet:    identity.Wallet,
		Role:      identity.Role.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseAccess validates an access token and returns its identity.
func (j *JWTTokenizer) ParseAccess(tokenStr string) (*core.Identity, error) {
	return j.parse(tokenStr, AudienceAccess, j.accessSecret)
}

// ParseRefresh validates a refresh token and returns its identity.
func (j *JWTTokenizer) ParseRefresh(tokenStr string) (*core.Identity, error) {
	return j.parse(tokenStr, AudienceRefresh, j.refreshSecret)
}

func (j *JWTTokenizer) parse(tokenStr, audience string, secret []byte) (*core.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithAudience(audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, core.ErrInvalidToken
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	role, ok := core.RoleByName(claims.Role)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	return &core.Identity{
		UserID:    claims.Subject,
		AddressID: claims.AddressID,
		Wallet:    claims.Wallet,
		Role:      role,
		RoleName:  claims.Role,
	}, nil
}
